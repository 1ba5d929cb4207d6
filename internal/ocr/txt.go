package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ASTHA22/healthcare-doc-processing/internal/extract"
)

func (e *Extractor) extractTxt(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return extract.TextExtractionResult{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return extract.TextExtractionResult{}, fmt.Errorf("read text file: %w", err)
	}
	if !utf8.Valid(raw) {
		return extract.TextExtractionResult{}, fmt.Errorf("not valid UTF-8: %s", path)
	}

	res := extract.TextExtractionResult{
		Text:   string(raw),
		Pages:  1,
		Method: "txt-read",
	}
	if strings.TrimSpace(res.Text) == "" {
		res.Warnings = append(res.Warnings, "empty text file")
	}
	return res, nil
}
