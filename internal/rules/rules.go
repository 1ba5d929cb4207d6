// Package rules holds the per-document-type field extraction rule sets.
// Rule sets load once at startup from a JSON artifact and are read-only
// afterwards; a Registry is safe for concurrent use.
package rules

import (
	"fmt"
	"regexp"
	"slices"
	"sort"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/normalize"
)

// FieldRule describes how to find, capture, and normalize one field.
// Anchor is the label alternation; Capture is the value pattern. The
// compiled form requires the label to start a logical line (or follow a
// column gap) and to be colon-terminated, with the value on the same
// line. That keeps a generic label like "Name" from binding a section
// header stacked above the real field.
type FieldRule struct {
	Field    string
	Anchor   string
	Capture  string
	Group    int // submatch index of the value, default 1
	Kind     normalize.Kind
	Required bool

	re *regexp.Regexp
}

// anchorPrefix restricts where a label may begin: line start, or after a
// tab / two-space column gap within a line.
const anchorPrefix = `(?:^[ \t]*|\t[ \t]*| {2,})`

func (r *FieldRule) compile() error {
	if r.Group <= 0 {
		r.Group = 1
	}
	anchor, err := regexp.Compile(r.Anchor)
	if err != nil {
		return fmt.Errorf("field %s: anchor: %w", r.Field, err)
	}
	if anchor.NumSubexp() > 0 {
		return fmt.Errorf("field %s: anchor must not contain capturing groups", r.Field)
	}
	re, err := regexp.Compile(`(?im)` + anchorPrefix + `(?:` + r.Anchor + `)[ \t]*:[ \t]*(` + r.Capture + `)`)
	if err != nil {
		return fmt.Errorf("field %s: %w", r.Field, err)
	}
	if r.Group > re.NumSubexp() {
		return fmt.Errorf("field %s: group %d exceeds %d capture groups", r.Field, r.Group, re.NumSubexp())
	}
	r.re = re
	return nil
}

// Match scans text for the rule's first anchored occurrence and returns
// the raw captured value.
func (r *FieldRule) Match(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil || m[r.Group] == "" {
		return "", false
	}
	return m[r.Group], true
}

// Registry is the immutable per-document-type rule configuration shared
// by the classifier, extractor, and validator.
type Registry struct {
	keywords map[constants.DocumentType][]string
	rules    map[constants.DocumentType][]FieldRule
}

// Keywords returns the classifier keyword set for dt. The slice is a
// copy; mutating it does not touch the Registry.
func (r *Registry) Keywords(dt constants.DocumentType) []string {
	return slices.Clone(r.keywords[dt])
}

// RulesFor returns the full rule set (common + type-specific) for dt.
// The slice is a copy; mutating it does not touch the Registry.
func (r *Registry) RulesFor(dt constants.DocumentType) []FieldRule {
	return slices.Clone(r.rules[dt])
}

// RuleFor looks up a single field's rule within dt's rule set.
func (r *Registry) RuleFor(dt constants.DocumentType, field string) (FieldRule, bool) {
	for _, rule := range r.rules[dt] {
		if rule.Field == field {
			return rule, true
		}
	}
	return FieldRule{}, false
}

// RequiredFields returns the sorted required field names for dt.
func (r *Registry) RequiredFields(dt constants.DocumentType) []string {
	var out []string
	for _, rule := range r.rules[dt] {
		if rule.Required {
			out = append(out, rule.Field)
		}
	}
	sort.Strings(out)
	return out
}
