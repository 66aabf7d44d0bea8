package types

// IDField is the reserved key holding a document's identifier.
const IDField = "_id"

// Document is a single record of a collection: a mapping from field name to
// a JSON-compatible value (string, number, bool, nested document, sequence or
// nil). Documents are plain data; persistence behaviour lives on the model.
type Document map[string]any

// ID returns the document identifier, or "" when the document has none or
// the stored value is not a string.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Has reports whether the field is present, even when its value is nil.
func (d Document) Has(field string) bool {
	_, ok := d[field]
	return ok
}

// Clone returns a deep copy of the document. Nested documents and sequences
// are copied; scalar values are shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies maps and slices reachable from v.
func CloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	default:
		return v
	}
}

// AsDocument converts nested map values to Document. It returns false when v
// is not a mapping.
func AsDocument(v any) (Document, bool) {
	switch t := v.(type) {
	case Document:
		return t, true
	case map[string]any:
		return Document(t), true
	default:
		return nil, false
	}
}

// Predicate is a boolean test over one document, used for find and delete
// matching.
type Predicate func(Document) bool
