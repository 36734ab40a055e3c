package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// parseScale parses a WxH argument like "1920x1080". One side may be 0 to
// keep the source aspect ratio on that axis.
func parseScale(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("scale must look like 1920x1080, got %q", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w < 0 {
		return 0, 0, fmt.Errorf("bad scale width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 {
		return 0, 0, fmt.Errorf("bad scale height %q", hs)
	}
	if w == 0 && h == 0 {
		return 0, 0, fmt.Errorf("scale %q has no target dimension", s)
	}
	return w, h, nil
}

// defaultOutPath derives the stego output path from the cover path.
func defaultOutPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".steg.png"
}

// readMessageFile loads the message text from a file. A single trailing
// newline is dropped so shell redirects and editors that end files with a
// newline embed the same text as a command-line argument would.
func readMessageFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := string(raw)
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
