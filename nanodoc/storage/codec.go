package storage

import (
	"bytes"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/arthur-debert/nanodoc/types"
	json "github.com/goccy/go-json"
)

var emptyCollection = []byte("[]")

// Encode serialises a collection as a two-space indented JSON array.
// Function values are dropped.
func Encode(docs []types.Document) ([]byte, error) {
	if len(docs) == 0 {
		return append([]byte(nil), emptyCollection...), nil
	}
	clean := make([]types.Document, len(docs))
	for i, doc := range docs {
		clean[i] = dropFuncs(doc)
	}
	data, err := json.MarshalIndent(clean, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal collection: %w", err)
	}
	return data, nil
}

// Decode parses a collection file. The content must be a JSON array whose
// elements are all objects, encoded as UTF-8.
func Decode(data []byte) ([]types.Document, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("content is not valid UTF-8")
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("content is not a JSON array")
	}
	var docs []types.Document
	if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	for i, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
	}
	if docs == nil {
		docs = []types.Document{}
	}
	return docs, nil
}

// Normalize returns doc as it reads back from a collection file: numbers
// become float64, nested documents map[string]any and sequences []any.
// Function values are dropped.
func Normalize(doc types.Document) (types.Document, error) {
	data, err := json.Marshal(dropFuncs(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var out types.Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return out, nil
}

// dropFuncs copies doc without function values, which have no JSON form.
// Members holding one are omitted and sequence elements holding one become
// null.
func dropFuncs(doc types.Document) types.Document {
	if doc == nil {
		return nil
	}
	out := make(types.Document, len(doc))
	for k, v := range doc {
		if isFunc(v) {
			continue
		}
		out[k] = dropValueFuncs(v)
	}
	return out
}

func dropValueFuncs(v any) any {
	switch t := v.(type) {
	case types.Document:
		return dropFuncs(t)
	case map[string]any:
		if t == nil {
			return t
		}
		return map[string]any(dropFuncs(t))
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			if !isFunc(e) {
				out[i] = dropValueFuncs(e)
			}
		}
		return out
	}
	return v
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
