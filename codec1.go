// The original frame layout (v1) had no header: message bytes ran from the
// very first sample and ended at the delimiter, found only by scanning.
// Characters outside printable ASCII were stored as raw char codes, so
// bytes >= 0x80 come back as their Latin-1 code points. Decode falls
// through to this scan whenever the v2 magic is absent.

package main

import (
	"bytes"
	"unicode/utf8"
)

// maxScanChars stops the v1 scan on images that merely look like they
// might hold a message; without a header there is no length to trust.
const maxScanChars = 1000000

// decodeLegacy runs the headerless scan over the whole sample stream.
func decodeLegacy(pix []byte) (string, error) {
	delim := []byte(delimiter)
	var (
		text  []byte
		chars int
		acc   byte
		nbits uint8
	)
	for i := 0; i < len(pix); i++ {
		if i&3 == 3 {
			continue // alpha
		}
		acc = acc<<1 | pix[i]&1
		nbits++
		if nbits < 8 {
			continue
		}
		b := acc
		acc, nbits = 0, 0

		if b < 0x80 {
			text = append(text, b)
		} else {
			// High bytes were stored as raw char codes; bring them back as
			// their code points.
			text = utf8.AppendRune(text, rune(b))
		}
		chars++

		if bytes.HasSuffix(text, delim) {
			return string(text[:len(text)-len(delim)]), nil
		}
		if chars == maxScanChars {
			break
		}
	}
	return "", ErrNoMessageFound
}
