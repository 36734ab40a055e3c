package main

import (
	"image"
	"image/draw"

	"github.com/disintegration/gift"
)

// RasterConfig controls how a decoded cover picture becomes the sample
// buffer the codec works on. The zero value keeps the source dimensions
// and copies channel values straight through.
type RasterConfig struct {
	// ScaleWidth and ScaleHeight resize the cover before conversion; zero
	// for one of them keeps the source aspect ratio on that axis. Scaling
	// only makes sense before a message goes in, a stego image has to
	// reach Decode sample-exact.
	ScaleWidth  int
	ScaleHeight int

	// Resampling picks the kernel used when scaling. nil means
	// nearest-neighbor, which keeps hard edges and flat areas flat.
	Resampling gift.Resampling
}

// ToNRGBA converts any decoded image into a tightly packed straight-alpha
// raster, scaling first when the config asks for it.
func ToNRGBA(src image.Image, cfg RasterConfig) *image.NRGBA {
	if cfg.ScaleWidth > 0 || cfg.ScaleHeight > 0 {
		res := cfg.Resampling
		if res == nil {
			res = gift.NearestNeighborResampling
		}
		g := gift.New(gift.Resize(cfg.ScaleWidth, cfg.ScaleHeight, res))
		dst := image.NewNRGBA(g.Bounds(src.Bounds()))
		g.Draw(dst, src)
		return dst
	}

	switch s := src.(type) {
	case *image.NRGBA:
		return cloneNRGBA(s)
	case *image.RGBA:
		if s.Opaque() {
			return opaqueRGBAToNRGBA(s)
		}
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// cloneNRGBA makes a tightly packed copy of src rebased to the origin.
// Rows are copied raw so sample values survive exactly; going through
// image/draw would round translucent pixels on the premultiply round trip.
func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[si:si+w*4])
	}
	return dst
}

// opaqueRGBAToNRGBA repacks a fully opaque RGBA image byte for byte; at
// full alpha the premultiplied and straight forms are identical.
func opaqueRGBAToNRGBA(src *image.RGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[si:si+w*4])
	}
	return dst
}

// rasterView returns img's samples as one contiguous slice together with
// the pixel dimensions. Tightly packed images are used as-is; padded or
// sub-image views are repacked row by row first.
func rasterView(img *image.NRGBA) ([]byte, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if b.Min == (image.Point{}) && img.Stride == w*4 {
		return img.Pix[:w*h*4], w, h
	}
	return cloneNRGBA(img).Pix, w, h
}
