package main

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Encode, Decode and the container layer.
// Wrapped values carry detail; match with errors.Is.
var (
	// ErrCapacityExceeded means the message does not fit in the target image.
	ErrCapacityExceeded = errors.New("steg: message too long for image")

	// ErrNoMessageFound means no framed message was recognized in the image,
	// in either the current or the legacy layout.
	ErrNoMessageFound = errors.New("steg: no hidden message found")

	// ErrInvalidLength means the header declared a byte count that cannot fit
	// in the image or exceeds the absolute payload cap.
	ErrInvalidLength = errors.New("steg: invalid message length")

	// ErrInvalidPayload means the extracted message bytes are not valid UTF-8.
	ErrInvalidPayload = errors.New("steg: message is not valid UTF-8")

	// ErrLossyContainer means the requested output format would not preserve
	// the exact sample values the message is stored in.
	ErrLossyContainer = errors.New("steg: lossy format would destroy the message")
)

// CapacityError reports how far a message overshoots an image and the
// largest message that image could hold. It unwraps to ErrCapacityExceeded.
type CapacityError struct {
	NeedBits int // bits required for the full frame
	HaveBits int // usable low bits in the image
	MaxChars int // largest message, in bytes, that would fit
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("steg: message needs %d bits, image holds %d (at most %d message bytes fit)",
		e.NeedBits, e.HaveBits, e.MaxChars)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// LengthError reports a header length field that failed validation.
// It unwraps to ErrInvalidLength.
type LengthError struct {
	Declared uint32 // byte count read from the header
	Limit    int    // cap it violated
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("steg: header declares %d message bytes, limit is %d", e.Declared, e.Limit)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }
