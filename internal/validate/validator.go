// Package validate checks an extracted field mapping against its
// document type's required-field and format rules.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/extract"
	"github.com/ASTHA22/healthcare-doc-processing/internal/normalize"
	"github.com/ASTHA22/healthcare-doc-processing/internal/rules"
)

// FormatError is one field whose present value fails its semantic kind.
type FormatError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Result is the validity verdict for one extracted document.
// IsValid holds iff MissingFields and FormatErrors are both empty.
type Result struct {
	IsValid       bool          `json:"is_valid"`
	MissingFields []string      `json:"missing_fields"`
	FormatErrors  []FormatError `json:"format_errors"`
}

// Reasons renders the verdict's violations for logs and reports.
func (r Result) Reasons() string {
	var parts []string
	for _, f := range r.MissingFields {
		parts = append(parts, "missing "+f)
	}
	for _, fe := range r.FormatErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Reason))
	}
	return strings.Join(parts, "; ")
}

type Validator struct {
	registry *rules.Registry
}

func NewValidator(registry *rules.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate never mutates fields. Missing fields come back sorted;
// format errors follow the rule set's declaration order.
func (v *Validator) Validate(fields extract.Fields, dt constants.DocumentType) Result {
	res := Result{
		MissingFields: []string{},
		FormatErrors:  []FormatError{},
	}

	for _, name := range v.registry.RequiredFields(dt) {
		if _, ok := fields[name]; !ok {
			res.MissingFields = append(res.MissingFields, name)
		}
	}

	for _, rule := range v.registry.RulesFor(dt) {
		value, ok := fields[rule.Field]
		if !ok {
			continue
		}
		if reason := checkFormat(rule.Kind, value); reason != "" {
			res.FormatErrors = append(res.FormatErrors, FormatError{Field: rule.Field, Reason: reason})
		}
	}

	res.IsValid = len(res.MissingFields) == 0 && len(res.FormatErrors) == 0
	return res
}

// Unclassifiable is the verdict for documents no rule set applies to.
func Unclassifiable() Result {
	return Result{
		IsValid:       false,
		MissingFields: []string{},
		FormatErrors:  []FormatError{{Field: "document_type", Reason: "unclassifiable document"}},
	}
}

func checkFormat(kind normalize.Kind, value string) string {
	switch kind {
	case normalize.KindDate:
		if _, err := time.Parse(normalize.CanonicalDateLayout, value); err != nil {
			return fmt.Sprintf("not a canonical date: %q", value)
		}
	case normalize.KindCurrency:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Sprintf("not a decimal amount: %q", value)
		}
		if d.IsNegative() {
			return fmt.Sprintf("negative amount: %q", value)
		}
	}
	return ""
}
