package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
)

func TestExtractTxt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claim.txt")
	content := "CLAIM DETAILS\nClaim #: CLM987654\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	e := NewExtractor(Config{}, nil)
	res, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Text != content {
		t.Errorf("Text = %q, want %q", res.Text, content)
	}
	if res.Method != "txt-read" {
		t.Errorf("Method = %q, want %q", res.Method, "txt-read")
	}
	if res.SourceType != constants.TXT {
		t.Errorf("SourceType = %q, want %q", res.SourceType, constants.TXT)
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1", res.Pages)
	}
}

func TestExtractEmptyTxtWarns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	e := NewExtractor(Config{}, nil)
	res, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(res.Warnings) == 0 {
		t.Error("empty file produced no warning")
	}
}

func TestExtractRejectsUnsupportedFormat(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	if _, err := e.Extract(context.Background(), "scan.tiff"); err == nil {
		t.Error("Extract(.tiff): want error")
	}
}

func TestExtractRejectsBinaryTxt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81}, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	e := NewExtractor(Config{}, nil)
	if _, err := e.Extract(context.Background(), path); err == nil {
		t.Error("Extract(invalid utf-8): want error")
	}
}

func TestExtractHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewExtractor(Config{}, nil)
	if _, err := e.Extract(ctx, "whatever.txt"); err == nil {
		t.Error("Extract(cancelled ctx): want error")
	}
}

func TestExtractMissingFile(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	if _, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Extract(missing): want error")
	}
}
