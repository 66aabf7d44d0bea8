package schema

import (
	"github.com/arthur-debert/nanodoc/types"
	"github.com/invopop/jsonschema"
)

// JSONSchema describes the schema as a JSON Schema (draft 2020-12) object.
// Properties keep declaration order and undeclared properties are rejected,
// mirroring Validate.
func (s *Schema) JSONSchema() *jsonschema.Schema {
	out := s.objectSchema()
	out.Version = jsonschema.Version
	return out
}

func (s *Schema) objectSchema() *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	if !s.nested && !s.idDisabled {
		out.Properties.Set(types.IDField, &jsonschema.Schema{
			Type:    "string",
			Pattern: s.gen.Pattern(),
		})
	}
	for _, f := range s.fields {
		if f.Name == types.IDField {
			continue
		}
		out.Properties.Set(f.Name, declSchema(f.Decl))
		if d, ok := f.Decl.(Described); ok && d.Required {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

func declSchema(d Decl) *jsonschema.Schema {
	switch t := d.(type) {
	case Nested:
		return t.Schema.objectSchema()
	case Sequence:
		out := &jsonschema.Schema{Type: "array"}
		if t.Elem != nil {
			out.Items = declSchema(t.Elem)
		}
		return out
	case Described:
		out := kindSchema(t.Kind)
		if t.HasDefault {
			out.Default = t.Default
		}
		return out
	case Literal:
		out := kindSchema(kindOf(t.Value))
		out.Default = t.Value
		return out
	case Primitive:
		return kindSchema(t.Kind)
	default:
		return &jsonschema.Schema{}
	}
}

func kindSchema(k Kind) *jsonschema.Schema {
	switch k {
	case String, Number, Boolean, Array, Object:
		return &jsonschema.Schema{Type: k.String()}
	case Func:
		return &jsonschema.Schema{Description: "function value (not serialisable)"}
	default:
		return &jsonschema.Schema{}
	}
}
