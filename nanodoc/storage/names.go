package storage

import (
	"fmt"
	"strings"
)

// Extension is appended to a collection name to form its file name. The
// double extension keeps collection files apart from unrelated JSON files.
const Extension = ".col.json"

// Canonical names of the built-in metadata collections.
const (
	RuntimeCollection      = "runtime"
	InteractionsCollection = "interactions"
	SettingsCollection     = "settings"
)

var builtinAliases = map[string]string{
	"rt":  RuntimeCollection,
	"ic":  InteractionsCollection,
	"set": SettingsCollection,
}

// Builtins lists the built-in metadata collections.
func Builtins() []string {
	return []string{RuntimeCollection, InteractionsCollection, SettingsCollection}
}

// IsBuiltin reports whether the canonical name is a built-in metadata
// collection.
func IsBuiltin(name string) bool {
	switch name {
	case RuntimeCollection, InteractionsCollection, SettingsCollection:
		return true
	}
	return false
}

// ResolveName maps a shorthand alias to its canonical collection name. Any
// other name is returned unchanged.
func (s *Store) ResolveName(name string) string {
	if canonical, ok := s.aliases[name]; ok {
		return canonical
	}
	return name
}

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("collection name cannot be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid collection name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("collection name %q cannot contain path separators", name)
	}
	return nil
}
