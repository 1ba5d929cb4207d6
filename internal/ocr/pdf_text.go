package ocr

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/ASTHA22/healthcare-doc-processing/internal/extract"
)

// extractPDF pulls the embedded text layer out of a PDF. PDFs without a
// text layer (pure scans) come back empty with a warning; the caller
// decides whether to route those to the external OCR service.
func (e *Extractor) extractPDF(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return extract.TextExtractionResult{}, err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return extract.TextExtractionResult{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	res := extract.TextExtractionResult{
		Pages:  pages,
		Method: "pdf-text",
	}
	if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("document has %d pages, limit is %d", pages, e.cfg.MaxPages))
		pages = e.cfg.MaxPages
	}

	var buf bytes.Buffer
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	res.Text = buf.String()
	if len(bytes.TrimSpace(buf.Bytes())) == 0 {
		res.Warnings = append(res.Warnings, "no embedded text layer; document may be a scan")
	}
	return res, nil
}
