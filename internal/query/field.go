// Package query implements the list query engine shared by every list screen:
// conjunctive field predicates, facet option extraction and time range formatting.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a filter or facet names a field the schema does not define.
var ErrUnknownField = errors.New("unknown filter field")

// MatchMode controls how a field compares a record value against a selected filter value.
type MatchMode int

const (
	// MatchExact requires record value == selected value. Used for picker-backed fields.
	MatchExact MatchMode = iota
	// MatchContains is a case-insensitive substring test. Used for free-text search fields.
	MatchContains
)

// String implements fmt.Stringer.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// Accessor reads a display value from a record. ok is false when the value lives
// behind a nested reference that is absent on this record.
type Accessor[T any] func(record T) (value string, ok bool)

// Field describes one filterable field of T.
type Field[T any] struct {
	Name     string
	Category string
	Mode     MatchMode
	Value    Accessor[T]
	// Fixed replaces data-derived facet options with a constant enumeration.
	Fixed []string
}

// Exact builds a MatchExact field.
func Exact[T any](name, category string, value Accessor[T]) Field[T] {
	return Field[T]{Name: name, Category: category, Mode: MatchExact, Value: value}
}

// Contains builds a MatchContains field.
func Contains[T any](name, category string, value Accessor[T]) Field[T] {
	return Field[T]{Name: name, Category: category, Mode: MatchContains, Value: value}
}

// WithFixed returns a copy of f whose facet is the given enumeration.
func (f Field[T]) WithFixed(values ...string) Field[T] {
	f.Fixed = append([]string(nil), values...)
	return f
}

// Matches reports whether record satisfies selected for this field alone.
// An empty selection always matches.
func (f Field[T]) Matches(record T, selected string) bool {
	if selected == "" {
		return true
	}
	if f.Value == nil {
		return false
	}
	value, ok := f.Value(record)
	if !ok {
		return false
	}
	switch f.Mode {
	case MatchContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(selected))
	default:
		return value == selected
	}
}

// Always wraps a plain string getter into an Accessor that never reports a missing value.
func Always[T any](get func(T) string) Accessor[T] {
	return func(record T) (string, bool) {
		return get(record), true
	}
}

// Optional wraps a getter returning a possibly nil string pointer.
func Optional[T any](get func(T) *string) Accessor[T] {
	return func(record T) (string, bool) {
		value := get(record)
		if value == nil {
			return "", false
		}
		return *value, true
	}
}
