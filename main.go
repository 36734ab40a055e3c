package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
)

func usage() {
	fmt.Fprint(os.Stderr, "Embed:   steg [options] <cover-image> <message...>\nExtract: steg [options] <stego-image>\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	var (
		outPath = flag.String("o", "", "output path for embedding (default: <input>.steg.png)")
		msgFile = flag.String("i", "", "read the message from this file instead of the arguments")
		frame   = flag.Int("frame", 0, "frame to use when the input is an animated gif")
		scale   = flag.String("scale", "", "scale the cover to WxH before embedding, e.g. 1920x1080")
		smooth  = flag.Bool("smooth", false, "use Lanczos resampling when scaling (default: nearest-neighbor)")
		showCap = flag.Bool("capacity", false, "print the input image's message capacity and exit")
	)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	input := args[0]

	var text string
	embedding := false
	switch {
	case *msgFile != "":
		t, err := readMessageFile(*msgFile)
		if err != nil {
			fail(err)
		}
		text = t
		embedding = true
	case len(args) > 1:
		text = strings.Join(args[1:], " ")
		embedding = true
	}

	var cfg RasterConfig
	if *scale != "" {
		if !embedding && !*showCap {
			fail(errors.New("-scale would destroy a hidden message; it only applies when embedding"))
		}
		w, h, err := parseScale(*scale)
		if err != nil {
			fail(err)
		}
		cfg.ScaleWidth, cfg.ScaleHeight = w, h
		if *smooth {
			cfg.Resampling = gift.LanczosResampling
		}
	}

	raster, err := loadCover(input, *frame, cfg)
	if err != nil {
		fail(err)
	}

	if *showCap {
		b := raster.Bounds()
		fmt.Printf("%d bytes (%dx%d)\n", Capacity(b.Dx(), b.Dy()), b.Dx(), b.Dy())
		return
	}

	if !embedding {
		msg, err := Decode(raster)
		if err != nil {
			fmt.Fprintln(os.Stderr, "extract error:", err)
			os.Exit(1)
		}
		fmt.Println(msg)
		return
	}

	stego, err := Encode(raster, text)
	if err != nil {
		fmt.Fprintln(os.Stderr, "embed error:", err)
		os.Exit(1)
	}

	out := *outPath
	if out == "" {
		out = defaultOutPath(input)
	}
	if err := WriteImage(out, stego, ContainerConfig{PNGLevel: png.BestCompression}); err != nil {
		fmt.Fprintln(os.Stderr, "embed error:", err)
		os.Exit(1)
	}
	b := stego.Bounds()
	fmt.Printf("Embedded %d bytes into %s (%dx%d) → %s\n", len(text), input, b.Dx(), b.Dy(), out)
}

// loadCover reads the input picture and turns it into the sample raster.
// For animated GIFs the frame flag picks which frame to composite.
func loadCover(path string, frame int, cfg RasterConfig) (*image.NRGBA, error) {
	if strings.ToLower(filepath.Ext(path)) == ".gif" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, err := ExtractFrame(f, frame)
		if err != nil {
			return nil, err
		}
		return ToNRGBA(img, cfg), nil
	}
	if frame != 0 {
		return nil, fmt.Errorf("-frame needs a gif input, %s is not one", path)
	}
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img, cfg), nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
