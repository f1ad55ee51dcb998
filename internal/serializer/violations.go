package serializer

import (
	"sort"
	"strings"
)

// Violation is one failed field rule.
type Violation struct {
	Field   string
	Message string
}

// Violations collects every failed rule of a write. It marshals to a map of
// field name to messages.
type Violations map[string][]string

// Add records a violation for field.
func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Has reports whether field has at least one violation.
func (v Violations) Has(field string) bool {
	return len(v[field]) > 0
}

// List returns the violations ordered by field.
func (v Violations) List() []Violation {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []Violation
	for _, f := range fields {
		for _, msg := range v[f] {
			out = append(out, Violation{Field: f, Message: msg})
		}
	}
	return out
}

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v.List() {
		parts = append(parts, violation.Field+": "+violation.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
