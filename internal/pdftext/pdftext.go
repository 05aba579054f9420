// Package pdftext turns uploaded PDF bytes into plain text, one line per
// text row, ready for question extraction.
package pdftext

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// Reader extracts the text layer of a PDF document.
type Reader interface {
	Text(ctx context.Context, data []byte) (string, error)
}

const (
	KindNative    = "native"
	KindPdftotext = "pdftotext"
)

// New returns the Reader registered under kind.
func New(kind string) (Reader, error) {
	switch kind {
	case KindNative, "":
		return Native{}, nil
	case KindPdftotext:
		return Poppler{Bin: "pdftotext"}, nil
	default:
		return nil, fmt.Errorf("unknown pdf extractor %q", kind)
	}
}

// IsPDF sniffs data and reports whether it is a PDF document.
func IsPDF(data []byte) bool {
	return mimetype.Detect(data).Is("application/pdf")
}
