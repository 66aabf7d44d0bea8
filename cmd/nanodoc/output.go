package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/nanodoc/types"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// printValue writes v to w in the requested format.
func printValue(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case formatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	default:
		return NewValidationError("print output", "format", format, "Use --format json or --format yaml")
	}
}

// parseDocument decodes a JSON object given on the command line.
func parseDocument(operation, arg string) (types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal([]byte(arg), &doc); err != nil || doc == nil {
		return nil, &CLIError{
			Operation:   operation,
			Cause:       "argument is not a JSON object",
			Details:     arg,
			Suggestions: []string{`Quote the document, e.g. '{"username": "ann"}'`, "Pass - to read the document from stdin"},
			Underlying:  err,
		}
	}
	return doc, nil
}
