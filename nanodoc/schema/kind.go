package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind is the primitive type of a field.
type Kind int

const (
	// String fields hold Go strings
	String Kind = iota + 1
	// Number fields hold any Go integer or floating point value
	Number
	// Boolean fields hold bools
	Boolean
	// Array fields hold slices
	Array
	// Object fields hold maps or structs
	Object
	// Func fields hold function values. They are dropped when a document
	// is written to a collection file.
	Func
)

var kindNames = map[Kind]string{
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
	Array:   "array",
	Object:  "object",
	Func:    "function",
}

// String returns the string representation of the Kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind converts a type name ("string", "Number", "bool", ...) to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str":
		return String, nil
	case "number", "num", "int", "integer", "float":
		return Number, nil
	case "boolean", "bool":
		return Boolean, nil
	case "array", "list", "sequence":
		return Array, nil
	case "object", "map", "document":
		return Object, nil
	case "function", "func":
		return Func, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", name)
	}
}

// Matches reports whether v has this kind. The test is structural: any
// integer or float is a Number, any slice or array is an Array, any map or
// struct is an Object, and only function values match Func.
func (k Kind) Matches(v any) bool {
	if v == nil {
		return false
	}
	rk := reflect.TypeOf(v).Kind()
	switch k {
	case String:
		return rk == reflect.String
	case Number:
		switch rk {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case Boolean:
		return rk == reflect.Bool
	case Array:
		return rk == reflect.Slice || rk == reflect.Array
	case Object:
		return rk == reflect.Map || rk == reflect.Struct
	case Func:
		return rk == reflect.Func
	default:
		return false
	}
}

// kindOf returns the kind of a runtime value, or 0 if none matches.
func kindOf(v any) Kind {
	for _, k := range []Kind{String, Number, Boolean, Array, Object, Func} {
		if k.Matches(v) {
			return k
		}
	}
	return 0
}

// describe names the runtime type of v for error messages.
func describe(v any) string {
	if v == nil {
		return "null"
	}
	if k := kindOf(v); k != 0 {
		return k.String()
	}
	return reflect.TypeOf(v).String()
}
