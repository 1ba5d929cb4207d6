// Package ocr extracts raw text from local document files. It covers
// text-bearing PDFs and plain text; scanned-image OCR belongs to the
// external recognition service and is not attempted here.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/extract"
)

type Config struct {
	MaxPages    int           // 0 = no limit
	ReadTimeout time.Duration // per-file limit, default 30s
}

type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract reads path and returns its raw text. The method recorded on
// the result is "pdf-text" or "txt-read".
func (e *Extractor) Extract(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	start := time.Now()
	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		return extract.TextExtractionResult{}, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.ReadTimeout)
	defer cancel()

	var res extract.TextExtractionResult
	var err error
	switch format {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.TXT:
		res, err = e.extractTxt(ctx, path)
	}
	if err != nil {
		e.logger.Error("ocr.extract.failed", "path", path, "format", format, "err", err)
		return res, err
	}

	res.SourceType = format
	res.Duration = time.Since(start)
	e.logger.Info("ocr.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"text_bytes", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
