package schema

import "github.com/arthur-debert/nanodoc/types"

// ApplyDefaults returns a new document holding every declared field, in
// declaration order of evaluation:
//
//   - a field present in data is copied verbatim (including nil);
//   - Described fields take their default, else false / "" / nil by kind;
//   - Nested fields are filled recursively from an empty document;
//   - Sequence fields default to an empty sequence;
//   - Primitive and Literal fields fall back to the declaration's raw value
//     (nil for a Primitive).
//
// Fields absent from the schema are dropped. When data has no _id key at all
// and identifiers are enabled, a fresh identifier is generated.
//
// data is never modified.
func (s *Schema) ApplyDefaults(data types.Document) types.Document {
	out := s.fill(data)
	if s.nested || s.idDisabled {
		return out
	}
	if id, ok := data[types.IDField]; ok {
		out[types.IDField] = id
	} else {
		out[types.IDField] = s.gen.Generate()
	}
	return out
}

func (s *Schema) fill(data types.Document) types.Document {
	out := make(types.Document, len(s.fields)+1)
	for _, f := range s.fields {
		if v, ok := data[f.Name]; ok {
			out[f.Name] = v
			continue
		}
		switch d := f.Decl.(type) {
		case Described:
			if d.HasDefault {
				out[f.Name] = cloneDefault(d.Default)
			} else {
				out[f.Name] = zeroValue(d.Kind)
			}
		case Nested:
			out[f.Name] = map[string]any(d.Schema.fill(types.Document{}))
		case Sequence:
			out[f.Name] = []any{}
		case Literal:
			out[f.Name] = cloneDefault(d.Value)
		case Primitive:
			out[f.Name] = nil
		}
	}
	return out
}
