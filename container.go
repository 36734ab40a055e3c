package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
)

// rgbzMagic opens the raw container: a fixed-size header followed by the
// zstd-compressed sample stream.
const rgbzMagic = "RGBZ\n"

// maxRasterDim bounds the dimensions accepted from an rgbz header before
// any pixel memory is allocated.
const maxRasterDim = 1 << 15

// ContainerConfig selects serialization options for stego output.
type ContainerConfig struct {
	// PNGLevel is handed to the png encoder; the zero value is the
	// encoder's default level.
	PNGLevel png.CompressionLevel
}

// ReadImage loads and decodes the picture at path, dispatching on the file
// extension. Lossy formats are fine here: a cover may start out as a JPEG,
// it only has to be written losslessly after the message goes in.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(f)
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	case ".gif":
		return gif.Decode(f)
	case ".bmp":
		return bmp.Decode(f)
	case ".qoi":
		return qoi.Decode(f)
	case ".rgbz":
		return readRGBZ(f)
	}

	// Unknown extension: let whatever decoder recognizes the signature try.
	img, _, err := image.Decode(f)
	return img, err
}

// WriteImage writes img to path in the container named by the extension.
// Formats that quantize or approximate sample values are refused; one
// recompression would flip the low bits the message lives in. qoi output
// additionally requires a fully opaque image.
func WriteImage(path string, img image.Image, cfg ContainerConfig) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".bmp", ".rgbz":
	case ".qoi":
		// The qoi encoder reads pixels premultiplied; translucent samples
		// come back rounded and the low bits do not survive.
		if !isOpaque(img) {
			return fmt.Errorf("%w: qoi premultiplies translucent samples", ErrLossyContainer)
		}
	case ".jpg", ".jpeg", ".gif":
		return fmt.Errorf("%w: %s", ErrLossyContainer, ext)
	default:
		return fmt.Errorf("write %s: unknown image format %q", path, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeImage(f, ext, img, cfg); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func encodeImage(w io.Writer, ext string, img image.Image, cfg ContainerConfig) error {
	switch ext {
	case ".png":
		enc := png.Encoder{CompressionLevel: cfg.PNGLevel}
		return enc.Encode(w, img)
	case ".qoi":
		return qoi.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".rgbz":
		return writeRGBZ(w, img)
	}
	return fmt.Errorf("unknown image format %q", ext)
}

// isOpaque reports whether every pixel of img is fully opaque. The stdlib
// raster types all answer through their Opaque method; anything else is
// scanned.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// writeRGBZ stores img as magic, big-endian width and height, then the
// zstd-compressed sample stream.
func writeRGBZ(w io.Writer, img image.Image) error {
	n := ToNRGBA(img, RasterConfig{})
	b := n.Bounds()

	var hdr [len(rgbzMagic) + 8]byte
	copy(hdr[:], rgbzMagic)
	binary.BigEndian.PutUint32(hdr[len(rgbzMagic):], uint32(b.Dx()))
	binary.BigEndian.PutUint32(hdr[len(rgbzMagic)+4:], uint32(b.Dy()))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return err
	}
	if _, err := zw.Write(n.Pix); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func readRGBZ(r io.Reader) (*image.NRGBA, error) {
	var hdr [len(rgbzMagic) + 8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("rgbz: read header: %w", err)
	}
	if string(hdr[:len(rgbzMagic)]) != rgbzMagic {
		return nil, fmt.Errorf("rgbz: bad magic: %q", string(hdr[:len(rgbzMagic)]))
	}
	w := int(binary.BigEndian.Uint32(hdr[len(rgbzMagic):]))
	h := int(binary.BigEndian.Uint32(hdr[len(rgbzMagic)+4:]))
	if w <= 0 || h <= 0 || w > maxRasterDim || h > maxRasterDim {
		return nil, fmt.Errorf("rgbz: unreasonable dimensions %dx%d", w, h)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	pix, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("rgbz: decompress: %w", err)
	}
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("rgbz: have %d sample bytes, want %d", len(pix), w*h*4)
	}
	return &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
}
