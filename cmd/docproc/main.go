package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/common"
	"github.com/ASTHA22/healthcare-doc-processing/internal/export"
	"github.com/ASTHA22/healthcare-doc-processing/internal/ingest"
	"github.com/ASTHA22/healthcare-doc-processing/internal/ocr"
	"github.com/ASTHA22/healthcare-doc-processing/internal/pipeline"
	"github.com/ASTHA22/healthcare-doc-processing/internal/rules"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		file       = flag.String("file", "", "single document to process")
		dir        = flag.String("dir", "", "directory of documents to process")
		typeHint   = flag.String("type", "", "declared document type (insurance_claim|prescription|medical_report)")
		out        = flag.String("out", "", "report path (.xlsx or .json); empty writes JSON lines to stdout")
		skipHidden = flag.Bool("skip-hidden", true, "skip hidden files and directories")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if (*file == "") == (*dir == "") {
		printError("Error: exactly one of --file or --dir is required\n")
		os.Exit(1)
	}

	declared := constants.Unknown
	if *typeHint != "" {
		dt, ok := constants.ParseDocumentType(*typeHint)
		if !ok {
			printError("Error: unknown document type %q\n", *typeHint)
			os.Exit(1)
		}
		declared = dt
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry, err := loadRegistry(cfg)
	if err != nil {
		printError("Error: loading rules: %v\n", err)
		os.Exit(1)
	}

	textExtractor := ocr.NewExtractor(ocr.Config{
		MaxPages:    cfg.OCR.MaxPages,
		ReadTimeout: cfg.OCR.ReadTimeout,
	}, logger)
	proc := pipeline.NewProcessor(registry, logger)
	ingestor := ingest.NewFSIngestor(logger)
	reports := export.NewService(cfg.Export.SheetName, logger)

	var ingested []ingest.IngestionResult
	if *file != "" {
		res, err := ingestor.IngestPath(ctx, *file)
		if err != nil {
			printError("Error: ingest %s: %v\n", *file, err)
			os.Exit(1)
		}
		ingested = append(ingested, res)
	} else {
		results, stats, err := ingestor.IngestDirectory(ctx, *dir, *skipHidden)
		if err != nil {
			printError("Error: ingest directory %s: %v\n", *dir, err)
			os.Exit(1)
		}
		logger.Info("ingest.done",
			"scanned", stats.Scanned,
			"matched", stats.Matched,
			"succeeded", stats.Succeeded,
			"deduplicated", stats.Deduplicated,
			"failed", stats.Failed,
		)
		ingested = results
	}

	records := processAll(ctx, logger, textExtractor, proc, declared, ingested)

	if err := writeReport(reports, *out, records); err != nil {
		printError("Error: writing report: %v\n", err)
		os.Exit(1)
	}
}

func loadRegistry(cfg *common.Config) (*rules.Registry, error) {
	if cfg.Rules.Path != "" {
		return rules.LoadFile(cfg.Rules.Path)
	}
	return rules.LoadDefault()
}

func processAll(
	ctx context.Context,
	logger *slog.Logger,
	textExtractor *ocr.Extractor,
	proc *pipeline.Processor,
	declared constants.DocumentType,
	ingested []ingest.IngestionResult,
) []export.Record {
	var records []export.Record
	for _, in := range ingested {
		if in.Err != "" {
			records = append(records, export.Record{
				SourcePath: in.SourcePath,
				Status:     constants.JobStatusFailed,
				Error:      in.Err,
			})
			continue
		}
		if in.Deduplicated {
			logger.Info("batch.skip_duplicate", "path", in.SourcePath, "file_id", in.FileID)
			continue
		}

		reqCtx := common.WithRequestID(common.WithSource(ctx, in.SourcePath), in.FileID)

		text, err := textExtractor.Extract(reqCtx, in.SourcePath)
		if err != nil {
			records = append(records, export.Record{
				SourcePath: in.SourcePath,
				FileID:     in.FileID,
				Status:     constants.JobStatusFailed,
				Error:      err.Error(),
			})
			continue
		}

		outcome := proc.Process(reqCtx, pipeline.Document{
			Text:         text.Text,
			DeclaredType: declared,
		})
		records = append(records, export.Record{
			SourcePath: in.SourcePath,
			FileID:     in.FileID,
			Status:     constants.JobStatusParsed,
			Outcome:    outcome,
		})
	}
	return records
}

func writeReport(reports *export.Service, out string, records []export.Record) error {
	if out == "" {
		return reports.WriteJSON(os.Stdout, records)
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		data, err := reports.WriteXLSX(records)
		if err != nil {
			return err
		}
		return os.WriteFile(out, data, 0o644)
	case ".json":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		return reports.WriteJSON(f, records)
	default:
		return fmt.Errorf("unsupported report extension: %s", filepath.Ext(out))
	}
}
