package main

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
)

var benchMessage = strings.Repeat("the quick brown fox jumps over the lazy dog. ", 40)

// benchImage is big enough that per-sample work dominates setup noise.
func benchImage() *image.NRGBA {
	return makeTestImage(1280, 720)
}

func BenchmarkEncode(b *testing.B) {
	img := benchImage()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(img, benchMessage); err != nil {
			b.Fatalf("Encode: %v", err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	stego, err := Encode(benchImage(), benchMessage)
	if err != nil {
		b.Fatalf("Encode: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(stego); err != nil {
			b.Fatalf("Decode: %v", err)
		}
	}
}

func BenchmarkDecode_Legacy(b *testing.B) {
	img := image.NewNRGBA(image.Rect(0, 0, 1280, 720))
	writeBits(img, buildLegacyFrame(benchMessage))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(img); err != nil {
			b.Fatalf("Decode: %v", err)
		}
	}
}

func BenchmarkCapacity(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Capacity(1920, 1080)
	}
}

// BenchmarkContainers compares the lossless output formats on the same
// stego image: identical loop shape per format, warm-up before timing,
// sizes logged under -v outside the timed section.
func BenchmarkContainers(b *testing.B) {
	stego, err := Encode(benchImage(), benchMessage)
	if err != nil {
		b.Fatalf("Encode: %v", err)
	}

	runContainer := func(name string, encode func(*bytes.Buffer) error) {
		b.Run(name, func(b *testing.B) {
			var buf bytes.Buffer
			if err := encode(&buf); err != nil {
				b.Fatalf("%s encode failed: %v", name, err)
			}
			if testing.Verbose() {
				b.Logf("size=%d bytes", buf.Len())
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf.Reset()
				if err := encode(&buf); err != nil {
					b.Fatalf("%s encode failed: %v", name, err)
				}
			}
		})
	}

	pngEnc := png.Encoder{CompressionLevel: png.BestSpeed}
	runContainer("PNG", func(buf *bytes.Buffer) error { return pngEnc.Encode(buf, stego) })
	runContainer("QOI", func(buf *bytes.Buffer) error { return qoi.Encode(buf, stego) })
	runContainer("BMP", func(buf *bytes.Buffer) error { return bmp.Encode(buf, stego) })
	runContainer("RGBZ", func(buf *bytes.Buffer) error { return writeRGBZ(buf, stego) })
}
