// Package export renders batch processing outcomes as XLSX workbooks or
// JSON lines.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/pipeline"
)

// Record is one processed document in a batch report.
type Record struct {
	SourcePath string              `json:"source_path"`
	FileID     string              `json:"file_id"`
	Status     constants.JobStatus `json:"status"`
	Error      string              `json:"error,omitempty"`
	Outcome    pipeline.Outcome    `json:"outcome"`
}

// Service produces report artifacts from processed records.
type Service struct {
	sheet  string
	logger *slog.Logger
}

func NewService(sheet string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = "Documents"
	}
	return &Service{sheet: sheet, logger: logger}
}

// WriteXLSX returns an XLSX workbook (as bytes) with one row per record.
func (s *Service) WriteXLSX(records []Record) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(s.sheet); index == -1 {
		if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(s.sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Source Path",
		"File ID",
		"Status",
		"Document Type",
		"Valid",
		"Patient Name",
		"Date Of Service",
		"Amount",
		"Missing Fields",
		"Format Errors",
		"Extracted Fields",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(s.sheet, cell, h)
	}

	row := 2
	for _, r := range records {
		var formatErrs []string
		for _, fe := range r.Outcome.Validation.FormatErrors {
			formatErrs = append(formatErrs, fmt.Sprintf("%s: %s", fe.Field, fe.Reason))
		}
		var pairs []string
		for _, name := range r.Outcome.Fields.Names() {
			pairs = append(pairs, name+"="+r.Outcome.Fields[name])
		}

		values := []any{
			r.SourcePath,
			r.FileID,
			string(r.Status),
			string(r.Outcome.DocumentType),
			r.Outcome.Validation.IsValid,
			r.Outcome.Fields["patient_name"],
			r.Outcome.Fields["date_of_service"],
			r.Outcome.Fields["amount"],
			strings.Join(r.Outcome.Validation.MissingFields, ", "),
			strings.Join(formatErrs, "; "),
			strings.Join(pairs, "; "),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(s.sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteJSON streams records as JSON lines.
func (s *Service) WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	s.logger.Info("export.json.ok", "rows", len(records))
	return nil
}
