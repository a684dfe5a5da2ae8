package query

import "fmt"

// Filter holds the transient filter selection of one view. It is owned by the view
// that created it and reset with Clear.
type Filter struct {
	names  []string
	values map[string]string
}

// NewFilter creates a filter accepting the given field names, all unconstrained.
func NewFilter(names ...string) *Filter {
	f := &Filter{
		names:  append([]string(nil), names...),
		values: make(map[string]string, len(names)),
	}
	for _, n := range names {
		f.values[n] = ""
	}
	return f
}

// Set assigns a value to a field. An empty value clears that field.
func (f *Filter) Set(name, value string) error {
	if _, ok := f.values[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.values[name] = value
	return nil
}

// Apply sets every entry of sel. If any key names an unknown field the filter is left
// untouched.
func (f *Filter) Apply(sel Selection) error {
	for name := range sel {
		if _, ok := f.values[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	for name, value := range sel {
		f.values[name] = value
	}
	return nil
}

// Get returns the selected value for name.
func (f *Filter) Get(name string) string {
	return f.values[name]
}

// Active reports whether any field is constrained.
func (f *Filter) Active() bool {
	for _, v := range f.values {
		if v != "" {
			return true
		}
	}
	return false
}

// Clear resets every field to the empty sentinel.
func (f *Filter) Clear() {
	for n := range f.values {
		f.values[n] = ""
	}
}

// Selection returns a copy of the non-empty selections.
func (f *Filter) Selection() Selection {
	sel := make(Selection)
	for _, n := range f.names {
		if v := f.values[n]; v != "" {
			sel[n] = v
		}
	}
	return sel
}
