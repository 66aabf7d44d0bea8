package model

import "github.com/arthur-debert/nanodoc/types"

// Handle is a document together with the model and identifier it was read
// from. Callers edit Doc in place and call Save to persist the edits.
type Handle struct {
	Doc types.Document

	model *Model
	id    string
}

// ID returns the identifier the handle will replace on Save. It follows the
// document's _id after each successful save.
func (h *Handle) ID() string {
	return h.id
}

// Save persists the current state of Doc. It is shorthand for
// h.Model().Persist(h).
func (h *Handle) Save() error {
	return h.model.Persist(h)
}

// Model returns the model the handle belongs to.
func (h *Handle) Model() *Model {
	return h.model
}
