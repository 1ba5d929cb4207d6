// Package classify determines a document's type from its raw text by
// keyword occurrence scoring.
package classify

import (
	"log/slog"
	"strings"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/rules"
)

type Classifier struct {
	registry *rules.Registry
	logger   *slog.Logger
}

func NewClassifier(registry *rules.Registry, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{registry: registry, logger: logger}
}

// Classify scores each document type by counting case-insensitive
// occurrences of its keyword set. The highest score wins; ties break by
// the fixed order in constants.ClassifiableTypes. All-zero scores yield
// constants.Unknown.
func (c *Classifier) Classify(text string) constants.DocumentType {
	lowered := strings.ToLower(text)

	best := constants.Unknown
	bestScore := 0
	for _, dt := range constants.ClassifiableTypes {
		score := 0
		for _, kw := range c.registry.Keywords(dt) {
			score += strings.Count(lowered, strings.ToLower(kw))
		}
		// strict > keeps the earlier type on ties
		if score > bestScore {
			best = dt
			bestScore = score
		}
	}

	if best == constants.Unknown {
		c.logger.Warn("classify.unmatched", "text_bytes", len(text))
		return constants.Unknown
	}
	c.logger.Debug("classify.ok", "document_type", best, "score", bestScore)
	return best
}
