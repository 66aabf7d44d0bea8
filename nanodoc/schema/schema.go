package schema

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/nanodoc/nanodoc/ids"
	"github.com/arthur-debert/nanodoc/types"
)

// Schema is an immutable, ordered set of field declarations.
type Schema struct {
	fields []Field
	index  map[string]int

	nested     bool // nested schemas never carry an identifier
	idDisabled bool
	strict     bool
	gen        *ids.Generator
}

// Option configures a Schema.
type Option func(*Schema)

// WithoutID disables the identifier field. Documents created through such a
// schema never carry _id.
func WithoutID() Option {
	return func(s *Schema) {
		s.idDisabled = true
	}
}

// WithStrictRequired makes Validate reject documents missing a field
// declared as required. Without it the required flag is advisory.
func WithStrictRequired() Option {
	return func(s *Schema) {
		s.strict = true
	}
}

// WithGenerator sets the identifier generator. Defaults to ids.Default.
func WithGenerator(g *ids.Generator) Option {
	return func(s *Schema) {
		if g != nil {
			s.gen = g
		}
	}
}

// New builds a schema from fields in declaration order.
func New(fields []Field, opts ...Option) (*Schema, error) {
	s, err := build(fields, false)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.idDisabled {
		if _, declared := s.index[types.IDField]; declared {
			return nil, fmt.Errorf("schema declares %s but identifiers are disabled", types.IDField)
		}
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(fields []Field, opts ...Option) *Schema {
	s, err := New(fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func build(fields []Field, nested bool) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
		nested: nested,
		gen:    ids.Default,
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field name cannot be empty")
		}
		if f.Decl == nil {
			return nil, fmt.Errorf("field %q has no declaration", f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field name: %s", f.Name)
		}
		if n, ok := f.Decl.(Nested); ok && n.Schema == nil {
			return nil, fmt.Errorf("field %q has an empty nested schema", f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// Fields returns the declared fields in order. The slice is a copy.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup returns the declaration of a field.
func (s *Schema) Lookup(name string) (Decl, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Decl, true
}

// Declares reports whether the schema declares the field.
func (s *Schema) Declares(name string) bool {
	_, ok := s.index[name]
	return ok
}

// IDDisabled reports whether the schema was built WithoutID.
func (s *Schema) IDDisabled() bool {
	return s.idDisabled
}

// Strict reports whether required fields are enforced.
func (s *Schema) Strict() bool {
	return s.strict
}

// Generator returns the identifier generator used for new documents.
func (s *Schema) Generator() *ids.Generator {
	return s.gen
}

// Undeclared returns the top-level fields of doc that the schema does not
// declare, excluding _id, sorted by name.
func (s *Schema) Undeclared(doc types.Document) []string {
	var out []string
	for k := range doc {
		if k == types.IDField {
			continue
		}
		if !s.Declares(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
