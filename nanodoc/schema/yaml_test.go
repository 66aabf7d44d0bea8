package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/go-cmp/cmp"
)

const userYAML = `
username: string
age: {type: number, default: 18, required: true}
active: boolean
tags: [string]
notes: array
role: guest
address:
  city: {type: string, default: Lisbon}
  zip: string
`

func TestLoadYAML(t *testing.T) {
	s, err := LoadYAML(strings.NewReader(userYAML))
	if err != nil {
		t.Fatalf("failed to load schema: %v", err)
	}

	var names []string
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"username", "age", "active", "tags", "notes", "role", "address"}, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}

	checks := map[string]Decl{
		"username": Of(String),
		"age":      Described{Kind: Number, Default: 18, HasDefault: true, Required: true},
		"active":   Of(Boolean),
		"tags":     SeqOf(Of(String)),
		"notes":    Seq(),
		"role":     Raw("guest"),
	}
	for name, want := range checks {
		got, _ := s.Lookup(name)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("declaration of %s mismatch (-want +got):\n%s", name, diff)
		}
	}

	addr, _ := s.Lookup("address")
	nested, ok := addr.(Nested)
	if !ok {
		t.Fatalf("expected nested declaration, got %T", addr)
	}
	if !nested.Schema.Declares("city") || !nested.Schema.Declares("zip") {
		t.Error("nested schema is missing fields")
	}

	got := s.ApplyDefaults(types.Document{"username": "x"})
	if got["age"] != 18 || got["role"] != "guest" {
		t.Errorf("unexpected defaults: %v", got)
	}
	if city := got["address"].(map[string]any)["city"]; city != "Lisbon" {
		t.Errorf("expected nested default Lisbon, got %v", city)
	}
}

func TestLoadYAMLIdentifierToggle(t *testing.T) {
	s, err := LoadYAML(strings.NewReader("_id: false\nname: string\n"))
	if err != nil {
		t.Fatalf("failed to load schema: %v", err)
	}
	if !s.IDDisabled() {
		t.Error("expected identifiers to be disabled")
	}
	if s.Declares("_id") {
		t.Error("_id: false must not declare a field")
	}

	s, err = LoadYAML(strings.NewReader("_id: true\nname: string\n"))
	if err != nil {
		t.Fatalf("failed to load schema: %v", err)
	}
	if s.IDDisabled() || s.Declares("_id") {
		t.Error("_id: true keeps the default identifier behaviour")
	}
}

func TestLoadYAMLAcceptsJSON(t *testing.T) {
	s, err := LoadYAML(strings.NewReader(`{"username": "string", "age": "number", "items": [{"sku": "string"}]}`))
	if err != nil {
		t.Fatalf("failed to load JSON schema: %v", err)
	}
	items, _ := s.Lookup("items")
	seq, ok := items.(Sequence)
	if !ok {
		t.Fatalf("expected sequence, got %T", items)
	}
	if _, ok := seq.Elem.(Nested); !ok {
		t.Errorf("expected nested element declaration, got %T", seq.Elem)
	}
	if err := s.Validate(types.Document{"items": []any{map[string]any{"sku": 1}}}); err == nil {
		t.Error("expected element validation to fail")
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not a mapping", "- a\n- b\n", "must be a mapping"},
		{"unknown type", "age: {type: date}\n", "unknown field type"},
		{"unknown descriptor key", "age: {type: number, min: 1}\n", "unknown descriptor key"},
		{"multi element sequence", "tags: [string, number]\n", "at most one"},
		{"invalid yaml", "a: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte(userYAML), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path, WithStrictRequired())
	if err != nil {
		t.Fatalf("failed to load schema file: %v", err)
	}
	if !s.Strict() {
		t.Error("options must be applied")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
