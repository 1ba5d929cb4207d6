package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/extract"
	"github.com/ASTHA22/healthcare-doc-processing/internal/pipeline"
	"github.com/ASTHA22/healthcare-doc-processing/internal/validate"
)

func sampleRecords() []Record {
	return []Record{
		{
			SourcePath: "/docs/claim.txt",
			FileID:     "f-1",
			Status:     constants.JobStatusParsed,
			Outcome: pipeline.Outcome{
				DocumentType: constants.InsuranceClaim,
				Fields: extract.Fields{
					"patient_name":    "John Doe",
					"member_id":       "ABC123456",
					"date_of_service": "2023-05-10",
					"amount":          "150.00",
				},
				Validation: validate.Result{
					IsValid:       true,
					MissingFields: []string{},
					FormatErrors:  []validate.FormatError{},
				},
			},
		},
		{
			SourcePath: "/docs/unreadable.pdf",
			FileID:     "f-2",
			Status:     constants.JobStatusFailed,
			Error:      "open pdf: file corrupt",
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	s := NewService("Documents", nil)

	data, err := s.WriteXLSX(sampleRecords())
	if err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Documents")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 { // header + 2 records
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Source Path" {
		t.Errorf("header[0] = %q, want %q", rows[0][0], "Source Path")
	}
	if rows[1][3] != string(constants.InsuranceClaim) {
		t.Errorf("document type cell = %q, want %q", rows[1][3], constants.InsuranceClaim)
	}
	if rows[1][5] != "John Doe" {
		t.Errorf("patient name cell = %q, want %q", rows[1][5], "John Doe")
	}
	if rows[2][2] != string(constants.JobStatusFailed) {
		t.Errorf("status cell = %q, want %q", rows[2][2], constants.JobStatusFailed)
	}
}

func TestWriteJSON(t *testing.T) {
	s := NewService("", nil)

	var buf bytes.Buffer
	if err := s.WriteJSON(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []Record
	for scanner.Scan() {
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		lines = append(lines, r)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Outcome.Fields["member_id"] != "ABC123456" {
		t.Errorf("member_id = %q", lines[0].Outcome.Fields["member_id"])
	}
	if lines[1].Error == "" || !strings.Contains(lines[1].Error, "corrupt") {
		t.Errorf("Error = %q, want corrupt file error", lines[1].Error)
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	s := NewService("Documents", nil)

	data, err := s.WriteXLSX(nil)
	if err != nil {
		t.Fatalf("WriteXLSX(nil) error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Documents")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}
