package schema

import (
	"testing"

	"github.com/arthur-debert/nanodoc/types"
)

func TestValidateAccepts(t *testing.T) {
	s := userSchema(t)

	tests := []struct {
		name string
		doc  types.Document
	}{
		{"empty document", types.Document{}},
		{"defaulted document", s.ApplyDefaults(types.Document{"username": "x"})},
		{"any numeric type", types.Document{"age": int64(3), "score": float32(1.5)}},
		{"identifier is skipped", types.Document{types.IDField: 42}},
		{"integer keys are skipped", types.Document{"0": "a", "17": true}},
		{"nil values are skipped", types.Document{"username": nil, "age": nil}},
		{"nested document", types.Document{"address": map[string]any{"city": "Faro"}}},
		{"nested Document type", types.Document{"address": types.Document{"zip": "8000"}}},
		{"typed sequence", types.Document{"tags": []any{"a", "b", nil}}},
		{"typed Go slice", types.Document{"tags": []string{"a"}}},
		{"literal kind", types.Document{"role": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Validate(tt.doc); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	s := userSchema(t)

	tests := []struct {
		name string
		doc  types.Document
		kind types.ViolationKind
		path string
	}{
		{"undeclared field", types.Document{"email": "x"}, types.UndeclaredField, "email"},
		{"undeclared nil field", types.Document{"email": nil}, types.UndeclaredField, "email"},
		{"string for number", types.Document{"age": "25"}, types.TypeMismatch, "age"},
		{"number for string", types.Document{"username": 1}, types.TypeMismatch, "username"},
		{"string for boolean", types.Document{"active": "yes"}, types.TypeMismatch, "active"},
		{"string for sequence", types.Document{"tags": "a,b"}, types.TypeMismatch, "tags"},
		{"wrong element type", types.Document{"tags": []any{"a", 2}}, types.TypeMismatch, "tags.1"},
		{"literal kind mismatch", types.Document{"role": true}, types.TypeMismatch, "role"},
		{"scalar for nested", types.Document{"address": "Lisbon"}, types.TypeMismatch, "address"},
		{"nested undeclared", types.Document{"address": map[string]any{"street": "x"}}, types.UndeclaredField, "address.street"},
		{"nested undeclared nil", types.Document{"address": map[string]any{"street": nil}}, types.UndeclaredField, "address.street"},
		{"nested mismatch", types.Document{"address": map[string]any{"zip": 1000}}, types.TypeMismatch, "address.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := schemaError(t, s.Validate(tt.doc))
			if se.Kind != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, se.Kind)
			}
			if se.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, se.Path)
			}
		})
	}
}

func TestValidateMismatchMessage(t *testing.T) {
	se := schemaError(t, userSchema(t).Validate(types.Document{"age": "old"}))
	if se.Expected != "number" || se.Got != "string" {
		t.Errorf("unexpected mismatch details: expected=%q got=%q", se.Expected, se.Got)
	}
	if se.Error() != `schema violation: field "age" must be number, got string` {
		t.Errorf("unexpected message %q", se.Error())
	}
}

func TestValidateFunctionKind(t *testing.T) {
	s := MustNew([]Field{F("hook", Of(Func))})

	if err := s.Validate(types.Document{"hook": func() {}}); err != nil {
		t.Errorf("function value should match Func: %v", err)
	}
	schemaError(t, s.Validate(types.Document{"hook": "func"}))

	// A function value never matches a non-function declaration.
	schemaError(t, MustNew([]Field{F("name", Of(String))}).Validate(types.Document{"name": func() {}}))
}

func TestValidateRequiredIsAdvisory(t *testing.T) {
	s := MustNew([]Field{
		F("email", Desc(String, Required())),
		F("name", Of(String)),
	})

	if err := s.Validate(types.Document{"name": "x"}); err != nil {
		t.Errorf("absent required field must not fail by default: %v", err)
	}
	if err := s.Validate(types.Document{"email": nil}); err != nil {
		t.Errorf("nil required field must not fail by default: %v", err)
	}
}

func TestValidateStrictRequired(t *testing.T) {
	s := MustNew([]Field{
		F("email", Desc(String, Required())),
		F("profile", Nest(F("bio", Desc(String, Required())))),
	}, WithStrictRequired())

	se := schemaError(t, s.Validate(types.Document{}))
	if se.Kind != types.MissingRequiredField || se.Path != "email" {
		t.Errorf("expected missing email, got %v", se)
	}

	se = schemaError(t, s.Validate(types.Document{"email": "a@b.c", "profile": map[string]any{}}))
	if se.Kind != types.MissingRequiredField || se.Path != "profile.bio" {
		t.Errorf("expected missing profile.bio, got %v", se)
	}

	if err := s.Validate(types.Document{"email": "a@b.c"}); err != nil {
		t.Errorf("absent nested document is not checked: %v", err)
	}
}

func TestKindMatches(t *testing.T) {
	tests := []struct {
		kind Kind
		v    any
		want bool
	}{
		{String, "x", true},
		{String, 1, false},
		{Number, 1, true},
		{Number, uint8(1), true},
		{Number, 1.5, true},
		{Number, "1", false},
		{Boolean, false, true},
		{Boolean, 0, false},
		{Array, []any{}, true},
		{Array, [2]int{}, true},
		{Array, map[string]any{}, false},
		{Object, map[string]any{}, true},
		{Object, struct{}{}, true},
		{Object, []any{}, false},
		{Func, func() {}, true},
		{Func, "f", false},
		{String, nil, false},
	}
	for _, tt := range tests {
		if got := tt.kind.Matches(tt.v); got != tt.want {
			t.Errorf("%s.Matches(%#v) = %v, want %v", tt.kind, tt.v, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{
		"string": String, "Number": Number, "bool": Boolean,
		"array": Array, "object": Object, "function": Func,
	} {
		got, err := ParseKind(name)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseKind("date"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
