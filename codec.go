// STEG hides short UTF-8 messages in the least significant bits of an
// image's color samples. The current frame layout (v2) is: a 6-byte ASCII
// magic "STEGv2", a 4-byte big-endian count of the bytes that follow, the
// message itself, and a fixed "::END::" delimiter. Frame bytes go in
// msb-first, one bit per R/G/B sample in row-major order; alpha samples
// carry no data, so transparency survives untouched. codec1.go reads the
// older headerless layout.

package main

import (
	"encoding/binary"
	"image"
	"strings"
	"unicode/utf8"
)

const (
	magic     = "STEGv2"
	delimiter = "::END::"
)

const (
	// lengthBytes is the big-endian byte count stored after the magic; it
	// covers the message plus the delimiter.
	lengthBytes = 4

	headerBytes   = len(magic) + lengthBytes
	frameOverhead = headerBytes + len(delimiter)

	// maxPayloadBytes caps the declared length on both sides of the codec;
	// a corrupt header cannot ask for more than this.
	maxPayloadBytes = 1 << 24
)

// Capacity returns the largest message, in bytes, that a width x height
// image can carry. Every pixel contributes one bit per R, G and B sample;
// the frame overhead (magic, length field, delimiter) is subtracted before
// dividing down to whole bytes. Multi-byte UTF-8 text reaches the limit in
// fewer characters than the returned count suggests.
func Capacity(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	usable := width * height * 3
	if usable <= frameOverhead*8 {
		return 0
	}
	n := (usable - frameOverhead*8) / 8
	if n > maxPayloadBytes-len(delimiter) {
		n = maxPayloadBytes - len(delimiter)
	}
	return n
}

// Encode hides text in a copy of img and returns the copy; img itself is
// never written to. The text must fit within Capacity for the image's
// dimensions, otherwise a *CapacityError wrapping ErrCapacityExceeded comes
// back and no image is produced.
func Encode(img *image.NRGBA, text string) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	frame := buildFrame(text)
	need := len(frame) * 8
	have := w * h * 3
	if need > have || len(text) > Capacity(w, h) {
		return nil, &CapacityError{
			NeedBits: need,
			HaveBits: have,
			MaxChars: Capacity(w, h),
		}
	}

	out := cloneNRGBA(img)
	pix := out.Pix
	bit := 0
	for i := 0; i < len(pix) && bit < need; i++ {
		if i&3 == 3 {
			continue // alpha
		}
		pix[i] = pix[i]&0xFE | frame[bit>>3]>>(7-bit&7)&1
		bit++
	}
	return out, nil
}

// Decode recovers a hidden message from img, which is read but never
// modified. Images written by the current encoder resolve through the v2
// header; anything without the magic falls through to the legacy scan.
func Decode(img *image.NRGBA) (string, error) {
	pix, w, h := rasterView(img)
	usable := w * h * 3

	if usable < headerBytes*8 {
		return "", ErrNoMessageFound
	}
	header := extractBytes(pix, headerBytes)
	if string(header[:len(magic)]) != magic {
		return decodeLegacy(pix)
	}

	declared := binary.BigEndian.Uint32(header[len(magic):])
	limit := maxPayloadBytes
	if fit := (usable - headerBytes*8) / 8; fit < limit {
		limit = fit
	}
	// Compared unconverted: int(declared) flips negative on 32-bit builds
	// for header values past 1<<31.
	if uint64(declared) > uint64(limit) {
		return "", &LengthError{Declared: declared, Limit: limit}
	}

	frame := extractBytes(pix, headerBytes+int(declared))
	payload := frame[headerBytes:]
	if !utf8.Valid(payload) {
		return "", ErrInvalidPayload
	}

	// Frames written by Encode always end in the delimiter, but the length
	// field alone is authoritative; a missing delimiter is tolerated.
	return strings.TrimSuffix(string(payload), delimiter), nil
}

// buildFrame lays out the full bit-carrying byte sequence for text: magic,
// big-endian count of everything after the header, message, delimiter.
func buildFrame(text string) []byte {
	body := len(text) + len(delimiter)
	frame := make([]byte, 0, headerBytes+body)
	frame = append(frame, magic...)
	frame = binary.BigEndian.AppendUint32(frame, uint32(body))
	frame = append(frame, text...)
	frame = append(frame, delimiter...)
	return frame
}

// extractBytes regroups the low bit of the first n*8 color samples into n
// bytes, msb-first, skipping alpha. The caller checks that pix holds
// enough samples.
func extractBytes(pix []byte, n int) []byte {
	out := make([]byte, n)
	total := n * 8
	bit := 0
	for i := 0; i < len(pix) && bit < total; i++ {
		if i&3 == 3 {
			continue
		}
		out[bit>>3] = out[bit>>3]<<1 | pix[i]&1
		bit++
	}
	return out
}
