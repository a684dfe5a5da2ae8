package query

import "fmt"

// Option is one selectable entry of a facet drop-down.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Facet groups the options offered for one field.
type Facet struct {
	Field   string   `json:"field"`
	Options []Option `json:"options"`
}

// AllLabel is the label of the leading sentinel option, e.g. "All Days".
func AllLabel(category string) string {
	if category == "" {
		return "All"
	}
	return "All " + category
}

// Facet derives the options for the named field from records. The first option is
// always the "All <Category>" sentinel with an empty value. Fixed fields return their
// enumeration; others return distinct non-empty values in first-occurrence order.
func (s *Schema[T]) Facet(records []T, name string) ([]Option, error) {
	f, ok := s.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return facetOptions(f, records), nil
}

// Facets returns one facet per field in schema order.
func (s *Schema[T]) Facets(records []T) []Facet {
	out := make([]Facet, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, Facet{Field: f.Name, Options: facetOptions(f, records)})
	}
	return out
}

func facetOptions[T any](f Field[T], records []T) []Option {
	options := []Option{{Label: AllLabel(f.Category), Value: ""}}
	if f.Fixed != nil {
		for _, v := range f.Fixed {
			options = append(options, Option{Label: v, Value: v})
		}
		return options
	}
	if f.Value == nil {
		return options
	}
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		v, ok := f.Value(r)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, Option{Label: v, Value: v})
	}
	return options
}
