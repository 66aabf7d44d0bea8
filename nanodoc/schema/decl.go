package schema

import "github.com/arthur-debert/nanodoc/types"

// Decl is a field declaration. The set of implementations is closed:
// Primitive, Described, Nested, Sequence and Literal.
type Decl interface {
	isDecl()
}

// Primitive declares a field by type alone.
type Primitive struct {
	Kind Kind
}

// Described declares a field with an optional default and a required flag.
type Described struct {
	Kind       Kind
	Default    any
	HasDefault bool
	Required   bool
}

// Nested declares a field holding a nested document.
type Nested struct {
	Schema *Schema
}

// Sequence declares a field holding a sequence. Elem, when set, is checked
// against every element.
type Sequence struct {
	Elem Decl
}

// Literal uses a raw value as the declaration. The value doubles as the
// default and its kind as the declared type.
type Literal struct {
	Value any
}

func (Primitive) isDecl() {}
func (Described) isDecl() {}
func (Nested) isDecl()    {}
func (Sequence) isDecl()  {}
func (Literal) isDecl()   {}

// Field binds a name to a declaration.
type Field struct {
	Name string
	Decl Decl
}

// F is shorthand for Field{Name: name, Decl: d}.
func F(name string, d Decl) Field {
	return Field{Name: name, Decl: d}
}

// Of declares a field by type.
func Of(k Kind) Primitive {
	return Primitive{Kind: k}
}

// DescOption configures a Described declaration.
type DescOption func(*Described)

// Default sets the value used when the field is absent.
func Default(v any) DescOption {
	return func(d *Described) {
		d.Default = v
		d.HasDefault = true
	}
}

// Required marks the field as required. Enforced only by strict schemas.
func Required() DescOption {
	return func(d *Described) {
		d.Required = true
	}
}

// Desc declares a field with a type, default and required flag.
func Desc(k Kind, opts ...DescOption) Described {
	d := Described{Kind: k}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Nest declares a nested document. It panics if the nested fields are
// invalid (empty or duplicate names), like regexp.MustCompile.
func Nest(fields ...Field) Nested {
	s, err := build(fields, true)
	if err != nil {
		panic(err)
	}
	return Nested{Schema: s}
}

// Seq declares an untyped sequence.
func Seq() Sequence {
	return Sequence{}
}

// SeqOf declares a sequence whose elements match elem.
func SeqOf(elem Decl) Sequence {
	return Sequence{Elem: elem}
}

// Raw declares a field by example value.
func Raw(v any) Literal {
	return Literal{Value: v}
}

// zeroValue is the default of a Described field without an explicit default.
func zeroValue(k Kind) any {
	switch k {
	case Boolean:
		return false
	case String:
		return ""
	default:
		return nil
	}
}

// declaredKind returns the kind a non-nested declaration expects, or 0 when
// any value is acceptable.
func declaredKind(d Decl) Kind {
	switch t := d.(type) {
	case Primitive:
		return t.Kind
	case Described:
		return t.Kind
	case Sequence:
		return Array
	case Nested:
		return Object
	case Literal:
		return kindOf(t.Value)
	default:
		return 0
	}
}

func cloneDefault(v any) any {
	return types.CloneValue(v)
}
