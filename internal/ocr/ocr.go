// Package ocr defines the text recognition contract used for food label
// scans, plus the cleaning and image preparation done around it.
package ocr

import (
	"context"
	"regexp"
	"strings"
)

// Input is a single image submitted for recognition.
type Input struct {
	// ID is echoed back in Result.InputID.
	ID string
	// Image is the encoded payload, normally the output of Preprocess.
	Image []byte
	// Format is the MIME type of Image.
	Format string
	// Languages are Tesseract trained data names such as "eng".
	Languages []string
}

// Result is the recognizer output for one Input.
type Result struct {
	InputID    string
	PlainText  string
	Confidence float64
}

// Engine is an OCR provider: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

var (
	newlines    = regexp.MustCompile(`\n+`)
	disallowed  = regexp.MustCompile(`[^a-zA-Z0-9%,.() ]`)
	whitespaces = regexp.MustCompile(`\s+`)
)

// CleanText flattens raw OCR output into one line of label-safe characters.
func CleanText(raw string) string {
	s := newlines.ReplaceAllString(raw, " ")
	s = disallowed.ReplaceAllString(s, "")
	s = whitespaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
