// Package pipeline composes classification, field extraction, and
// validation into a single stateless call.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/classify"
	"github.com/ASTHA22/healthcare-doc-processing/internal/common"
	"github.com/ASTHA22/healthcare-doc-processing/internal/extract"
	"github.com/ASTHA22/healthcare-doc-processing/internal/rules"
	"github.com/ASTHA22/healthcare-doc-processing/internal/validate"
)

// Document is the immutable pipeline input: raw recognized text plus an
// optional declared type.
type Document struct {
	Text         string
	DeclaredType constants.DocumentType
}

// Outcome carries everything a caller needs from one pipeline run.
type Outcome struct {
	DocumentType constants.DocumentType `json:"document_type"`
	Fields       extract.Fields         `json:"fields"`
	Validation   validate.Result        `json:"validation"`
}

// Processor coordinates classify -> extract -> validate. It holds only
// read-only rule state and is safe for concurrent use.
type Processor struct {
	Logger     *slog.Logger
	Classifier *classify.Classifier
	Extractor  *extract.FieldExtractor
	Validator  *validate.Validator
}

func NewProcessor(registry *rules.Registry, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:     logger,
		Classifier: classify.NewClassifier(registry, logger),
		Extractor:  extract.NewFieldExtractor(registry, logger),
		Validator:  validate.NewValidator(registry),
	}
}

// Process resolves the document type (declared hint wins when known),
// extracts fields, and validates them. Every input yields an Outcome:
// unclassifiable documents come back as Unknown with empty fields and a
// failing verdict, never as an error.
func (p *Processor) Process(ctx context.Context, doc Document) Outcome {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}

	dt := doc.DeclaredType
	if dt == "" || dt == constants.Unknown {
		dt = p.Classifier.Classify(doc.Text)
	}

	if dt == constants.Unknown {
		p.Logger.Warn("pipeline.unclassifiable", "req_id", reqID, "text_bytes", len(doc.Text))
		return Outcome{
			DocumentType: constants.Unknown,
			Fields:       extract.Fields{},
			Validation:   validate.Unclassifiable(),
		}
	}

	fields := p.Extractor.ExtractFields(doc.Text, dt)
	verdict := p.Validator.Validate(fields, dt)

	p.Logger.Info("pipeline.ok",
		"req_id", reqID,
		"document_type", dt,
		"fields", len(fields),
		"is_valid", verdict.IsValid,
		"missing", len(verdict.MissingFields),
		"format_errors", len(verdict.FormatErrors),
	)
	return Outcome{DocumentType: dt, Fields: fields, Validation: verdict}
}
