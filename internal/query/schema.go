package query

import "fmt"

// Selection maps a field name to the user-selected value. Missing or empty values
// leave the field unconstrained.
type Selection map[string]string

// Schema is the ordered set of filterable fields for one record type.
type Schema[T any] struct {
	fields []Field[T]
	index  map[string]int
}

// NewSchema builds a schema. It panics on duplicate or empty field names since
// schemas are declared once at package level.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		fields: make([]Field[T], 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			panic("query: field without name")
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("query: duplicate field %q", f.Name))
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Names returns field names in declaration order.
func (s *Schema[T]) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	i, ok := s.index[name]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// NewFilter returns an empty filter state covering every field of the schema.
func (s *Schema[T]) NewFilter() *Filter {
	return NewFilter(s.Names()...)
}

// Match reports whether record passes every active filter in sel.
// Keys in sel that name no field are ignored.
func (s *Schema[T]) Match(record T, sel Selection) bool {
	for _, f := range s.fields {
		if !f.Matches(record, sel[f.Name]) {
			return false
		}
	}
	return true
}

// Apply returns the records that match sel, preserving input order.
func (s *Schema[T]) Apply(records []T, sel Selection) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if s.Match(r, sel) {
			out = append(out, r)
		}
	}
	return out
}
