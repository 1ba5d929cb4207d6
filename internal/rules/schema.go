package rules

// BuildRulesJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// The rules artifact is validated against it at load time.
func BuildRulesJSONSchema() map[string]any {
	docTypes := []string{"insurance_claim", "prescription", "medical_report"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"version": map[string]any{"type": "integer", "minimum": 1},
			"keywords": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"insurance_claim": keywordsProp(),
					"prescription":    keywordsProp(),
					"medical_report":  keywordsProp(),
				},
				"required": docTypes,
			},
			"common": map[string]any{
				"type":  "array",
				"items": ruleProp(),
			},
			"types": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"insurance_claim": map[string]any{"type": "array", "items": ruleProp()},
					"prescription":    map[string]any{"type": "array", "items": ruleProp()},
					"medical_report":  map[string]any{"type": "array", "items": ruleProp()},
				},
				"required": docTypes,
			},
		},
		"required": []string{"version", "keywords", "common", "types"},
	}
}

func keywordsProp() map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
}

func ruleProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"field":   map[string]any{"type": "string", "pattern": `^[a-z][a-z0-9_]*$`},
			"anchor":  map[string]any{"type": "string", "minLength": 1},
			"capture": map[string]any{"type": "string", "minLength": 1},
			"group":   map[string]any{"type": "integer", "minimum": 1},
			"kind":    map[string]any{"type": "string", "enum": []string{"date", "currency", "identifier", "text"}},
			"required": map[string]any{
				"type": "boolean",
			},
			"required_for": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": []string{"insurance_claim", "prescription", "medical_report"}},
			},
		},
		"required": []string{"field", "anchor", "capture", "kind"},
	}
}
