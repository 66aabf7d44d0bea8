package model

import (
	"reflect"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
)

// All matches every document.
func All() types.Predicate {
	return func(types.Document) bool { return true }
}

// ByID matches the document with the given identifier.
func ByID(id string) types.Predicate {
	return func(d types.Document) bool {
		return d.ID() == id
	}
}

// Match builds a predicate from an exact-match field mapping: a document
// matches when every listed field is present and structurally equal. Values
// are compared as they read back from disk, so Match(Document{"age": 25})
// matches a stored 25.0.
func Match(fields types.Document) types.Predicate {
	want := fields
	if normalized, err := storage.Normalize(fields); err == nil {
		want = normalized
	}
	return func(d types.Document) bool {
		for k, v := range want {
			got, ok := d[k]
			if !ok || !reflect.DeepEqual(got, v) {
				return false
			}
		}
		return true
	}
}

// Not negates a predicate.
func Not(p types.Predicate) types.Predicate {
	return func(d types.Document) bool {
		return !p(d)
	}
}

func orAll(p types.Predicate) types.Predicate {
	if p == nil {
		return All()
	}
	return p
}
