package extract

import (
	"errors"
	"log/slog"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/normalize"
	"github.com/ASTHA22/healthcare-doc-processing/internal/rules"
)

// FieldExtractor applies a document type's rule set to raw text.
// Extraction is best-effort per field: a rule that does not match, or
// whose captured value fails normalization, contributes nothing.
type FieldExtractor struct {
	registry *rules.Registry
	logger   *slog.Logger
}

func NewFieldExtractor(registry *rules.Registry, logger *slog.Logger) *FieldExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldExtractor{registry: registry, logger: logger}
}

// ExtractFields scans text with every rule for dt and returns the
// canonical field mapping.
func (e *FieldExtractor) ExtractFields(text string, dt constants.DocumentType) Fields {
	fields := make(Fields)
	if text == "" {
		return fields
	}

	for _, rule := range e.registry.RulesFor(dt) {
		raw, ok := rule.Match(text)
		if !ok {
			continue
		}
		value, err := normalize.Apply(rule.Kind, raw)
		if err != nil {
			var ne *normalize.Error
			if errors.As(err, &ne) {
				e.logger.Warn("extract.field.normalize_failed",
					"document_type", dt, "field", rule.Field, "raw", raw)
				continue
			}
			e.logger.Error("extract.field.error", "field", rule.Field, "err", err)
			continue
		}
		if value == "" {
			// empty after canonicalization: treat as absent
			continue
		}
		fields[rule.Field] = value
	}

	e.logger.Debug("extract.ok", "document_type", dt, "fields", len(fields))
	return fields
}
