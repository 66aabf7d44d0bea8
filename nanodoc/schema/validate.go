package schema

import (
	"sort"
	"strconv"

	"github.com/arthur-debert/nanodoc/types"
)

// Validate checks data against the schema and returns the first violation as
// a *types.SchemaError (matching types.ErrSchemaViolation).
//
// Every present field is checked in name order, except _id and keys that
// parse as integers (array index artifacts). Undeclared fields fail even when
// they hold nil. Declared fields holding nil are skipped, so a required field
// that was never supplied passes unless the schema is strict.
func (s *Schema) Validate(data types.Document) error {
	return s.validate(data, "")
}

func (s *Schema) validate(data types.Document, prefix string) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == types.IDField || isIndexKey(k) {
			continue
		}
		path := join(prefix, k)
		d, ok := s.Lookup(k)
		if !ok {
			return &types.SchemaError{Kind: types.UndeclaredField, Path: path}
		}
		v := data[k]
		if v == nil {
			continue
		}
		if err := s.validateValue(d, v, path); err != nil {
			return err
		}
	}

	if s.strict {
		for _, f := range s.fields {
			d, ok := f.Decl.(Described)
			if !ok || !d.Required {
				continue
			}
			if data[f.Name] == nil {
				return &types.SchemaError{Kind: types.MissingRequiredField, Path: join(prefix, f.Name)}
			}
		}
	}
	return nil
}

func (s *Schema) validateValue(d Decl, v any, path string) error {
	switch t := d.(type) {
	case Nested:
		doc, ok := types.AsDocument(v)
		if !ok {
			return mismatch(path, Object, v)
		}
		// Nested schemas inherit strictness from the root.
		inner := *t.Schema
		inner.strict = s.strict
		return inner.validate(doc, path)
	case Sequence:
		if !Array.Matches(v) {
			return mismatch(path, Array, v)
		}
		if t.Elem == nil {
			return nil
		}
		items, ok := v.([]any)
		if !ok {
			return nil
		}
		for i, item := range items {
			if item == nil {
				continue
			}
			if err := s.validateValue(t.Elem, item, join(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil
	default:
		k := declaredKind(d)
		if k == 0 || k.Matches(v) {
			return nil
		}
		return mismatch(path, k, v)
	}
}

func mismatch(path string, want Kind, v any) error {
	return &types.SchemaError{
		Kind:     types.TypeMismatch,
		Path:     path,
		Expected: want.String(),
		Got:      describe(v),
	}
}

func isIndexKey(k string) bool {
	_, err := strconv.ParseInt(k, 10, 64)
	return err == nil
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
