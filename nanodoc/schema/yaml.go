package schema

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/nanodoc/types"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a schema definition from a YAML or JSON file.
func LoadFile(path string, opts ...Option) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := LoadYAML(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadYAML builds a schema from a YAML mapping. JSON is accepted as well.
//
//	username: string            # Primitive
//	age: {type: number, default: 18, required: true}
//	tags: [string]              # Sequence of strings
//	notes: array                # untyped Sequence
//	address:                    # Nested
//	  city: string
//	role: guest                 # Literal
//	_id: false                  # disable identifiers
//
// Declaration order follows the document.
func LoadYAML(r io.Reader, opts ...Option) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema must be a mapping, got %s", nodeKind(root))
	}

	// _id: true|false toggles identifiers rather than declaring a field.
	var fields []Field
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Value == types.IDField && val.Kind == yaml.ScalarNode && val.Tag == "!!bool" {
			var enabled bool
			if err := val.Decode(&enabled); err != nil {
				return nil, fmt.Errorf("field %s: %w", types.IDField, err)
			}
			if !enabled {
				opts = append(opts, WithoutID())
			}
			continue
		}
		d, err := parseDecl(val, key.Value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, F(key.Value, d))
	}
	return New(fields, opts...)
}

func parseFields(n *yaml.Node, path string) ([]Field, error) {
	fields := make([]Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		d, err := parseDecl(val, join(path, key.Value))
		if err != nil {
			return nil, err
		}
		fields = append(fields, F(key.Value, d))
	}
	return fields, nil
}

func parseDecl(n *yaml.Node, path string) (Decl, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			if k, err := ParseKind(n.Value); err == nil {
				if k == Array {
					return Seq(), nil
				}
				return Of(k), nil
			}
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("field %s: %w", path, err)
		}
		return Raw(v), nil

	case yaml.SequenceNode:
		switch len(n.Content) {
		case 0:
			return Seq(), nil
		case 1:
			elem, err := parseDecl(n.Content[0], path+".0")
			if err != nil {
				return nil, err
			}
			return SeqOf(elem), nil
		default:
			return nil, fmt.Errorf("field %s: sequence declaration takes at most one element type", path)
		}

	case yaml.MappingNode:
		if typ := mappingValue(n, "type"); typ != nil && typ.Kind == yaml.ScalarNode {
			return parseDescribed(n, typ, path)
		}
		fields, err := parseFields(n, path)
		if err != nil {
			return nil, err
		}
		nested, err := build(fields, true)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", path, err)
		}
		return Nested{Schema: nested}, nil

	default:
		return nil, fmt.Errorf("field %s: unsupported declaration (%s)", path, nodeKind(n))
	}
}

func parseDescribed(n, typ *yaml.Node, path string) (Decl, error) {
	k, err := ParseKind(typ.Value)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", path, err)
	}
	d := Described{Kind: k}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "type":
		case "default":
			var v any
			if err := val.Decode(&v); err != nil {
				return nil, fmt.Errorf("field %s: default: %w", path, err)
			}
			d.Default = v
			d.HasDefault = true
		case "required":
			if err := val.Decode(&d.Required); err != nil {
				return nil, fmt.Errorf("field %s: required: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("field %s: unknown descriptor key %q", path, key.Value)
		}
	}
	return d, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}
