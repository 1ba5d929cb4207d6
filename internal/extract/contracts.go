package extract

import (
	"context"
	"sort"
	"time"
)

// TextExtractor is Stage 1: file -> text. The production OCR service
// lives behind this interface; internal/ocr supplies a local
// implementation for text-bearing PDFs and plain text files.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.TXT
	Method     string // "pdf-text" | "txt-read"
	Duration   time.Duration
	Warnings   []string
}

// Fields is the canonical field mapping produced by extraction. Values
// are always in canonical form; a field that failed normalization is
// absent, never partially normalized.
type Fields map[string]string

// Names returns the extracted field names in sorted order.
func (f Fields) Names() []string {
	out := make([]string, 0, len(f))
	for name := range f {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
