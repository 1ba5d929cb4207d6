package constants

import (
	"strings"
)

type DocumentType string

const (
	InsuranceClaim DocumentType = "insurance_claim"
	Prescription   DocumentType = "prescription"
	MedicalReport  DocumentType = "medical_report"
	Unknown        DocumentType = "unknown"
)

// ClassifiableTypes is the fixed priority order used to break classifier ties.
var ClassifiableTypes = []DocumentType{
	InsuranceClaim,
	Prescription,
	MedicalReport,
}

func AsStringSlice() []string {
	result := make([]string, len(ClassifiableTypes))
	for i, dt := range ClassifiableTypes {
		result[i] = string(dt)
	}
	return result
}

// ParseDocumentType resolves a declared type hint to a known DocumentType.
func ParseDocumentType(input string) (DocumentType, bool) {
	if input == "" {
		return Unknown, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	// synonyms map
	synonyms := map[string]DocumentType{
		"claim":      InsuranceClaim,
		"insurance":  InsuranceClaim,
		"eob":        InsuranceClaim,
		"rx":         Prescription,
		"script":     Prescription,
		"report":     MedicalReport,
		"lab_report": MedicalReport,
	}

	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range ClassifiableTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}

	return Unknown, false
}
