package rules

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/normalize"
)

//go:embed rules.json
var defaultArtifact []byte

type ruleSpec struct {
	Field       string   `json:"field"`
	Anchor      string   `json:"anchor"`
	Capture     string   `json:"capture"`
	Group       int      `json:"group,omitempty"`
	Kind        string   `json:"kind"`
	Required    bool     `json:"required,omitempty"`
	RequiredFor []string `json:"required_for,omitempty"`
}

type artifact struct {
	Version  int                   `json:"version"`
	Keywords map[string][]string   `json:"keywords"`
	Common   []ruleSpec            `json:"common"`
	Types    map[string][]ruleSpec `json:"types"`
}

// LoadDefault builds a Registry from the embedded rules artifact.
func LoadDefault() (*Registry, error) {
	return Load(defaultArtifact)
}

// LoadFile builds a Registry from an alternate rules artifact on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules artifact: %w", err)
	}
	return Load(data)
}

// Load validates the artifact against its schema, compiles every rule,
// and returns an immutable Registry.
func Load(data []byte) (*Registry, error) {
	if err := validateArtifact(data); err != nil {
		return nil, err
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode rules artifact: %w", err)
	}

	reg := &Registry{
		keywords: make(map[constants.DocumentType][]string, len(constants.ClassifiableTypes)),
		rules:    make(map[constants.DocumentType][]FieldRule, len(constants.ClassifiableTypes)),
	}

	for _, dt := range constants.ClassifiableTypes {
		kws := a.Keywords[string(dt)]
		if len(kws) == 0 {
			return nil, fmt.Errorf("rules artifact: no keywords for %s", dt)
		}
		reg.keywords[dt] = slices.Clone(kws)

		var compiled []FieldRule
		seen := make(map[string]struct{})
		for _, spec := range a.Common {
			rule, err := buildRule(spec, slices.Contains(spec.RequiredFor, string(dt)))
			if err != nil {
				return nil, err
			}
			if _, dup := seen[rule.Field]; dup {
				return nil, fmt.Errorf("rules artifact: duplicate field %s for %s", rule.Field, dt)
			}
			seen[rule.Field] = struct{}{}
			compiled = append(compiled, rule)
		}
		for _, spec := range a.Types[string(dt)] {
			rule, err := buildRule(spec, spec.Required)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[rule.Field]; dup {
				return nil, fmt.Errorf("rules artifact: duplicate field %s for %s", rule.Field, dt)
			}
			seen[rule.Field] = struct{}{}
			compiled = append(compiled, rule)
		}
		reg.rules[dt] = compiled
	}

	return reg, nil
}

func buildRule(spec ruleSpec, required bool) (FieldRule, error) {
	rule := FieldRule{
		Field:    spec.Field,
		Anchor:   spec.Anchor,
		Capture:  spec.Capture,
		Group:    spec.Group,
		Kind:     normalize.Kind(spec.Kind),
		Required: required,
	}
	if err := rule.compile(); err != nil {
		return FieldRule{}, fmt.Errorf("rules artifact: %w", err)
	}
	return rule, nil
}

// validateArtifact validates the raw artifact against the rules schema.
func validateArtifact(data []byte) error {
	b, err := json.Marshal(BuildRulesJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules-schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules-schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode rules artifact: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("rules artifact does not match schema: %w", err)
	}
	return nil
}
