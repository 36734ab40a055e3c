package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
)

// ExtractFrame decodes an animated GIF from r and returns frame index as a
// standalone raster, composited the way a viewer would show it: each frame
// paints over the accumulated canvas, then disposes per its disposal mode.
func ExtractFrame(r io.Reader, index int) (*image.NRGBA, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if index < 0 || index >= len(g.Image) {
		return nil, fmt.Errorf("frame %d out of range: gif has %d frame(s)", index, len(g.Image))
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		// Some encoders leave the logical screen size out; take frame 0's.
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i <= index; i++ {
		fr := g.Image[i]
		var saved *image.NRGBA
		if i < index && i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			saved = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, fr.Bounds(), fr, fr.Bounds().Min, draw.Over)
		if i == index {
			break
		}

		if i >= len(g.Disposal) {
			continue
		}
		switch g.Disposal[i] {
		case gif.DisposalBackground:
			draw.Draw(canvas, fr.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
	}
	return canvas, nil
}
