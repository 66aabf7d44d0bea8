package model

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/arthur-debert/nanodoc/nanodoc/schema"
	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
)

// Collections is the persistence surface a model needs. *storage.Store
// implements it.
type Collections interface {
	ResolveName(name string) string
	Load(name string) ([]types.Document, error)
	Save(name string, docs []types.Document) error
	Wipe(name string) error
}

// Option configures a Model.
type Option func(*Model)

// WithRecorder sets the interaction recorder notified by every operation.
func WithRecorder(r Recorder) Option {
	return func(m *Model) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model binds a schema to one collection.
type Model struct {
	name     string
	schema   *schema.Schema
	store    Collections
	recorder Recorder
	logger   *slog.Logger
}

// New creates a model for the named collection. Aliases are resolved once,
// here.
func New(store Collections, name string, s *schema.Schema, opts ...Option) (*Model, error) {
	if store == nil {
		return nil, fmt.Errorf("model %q: store is required", name)
	}
	if s == nil {
		return nil, fmt.Errorf("model %q: schema is required", name)
	}
	name = store.ResolveName(name)
	if name == "" {
		return nil, fmt.Errorf("model: collection name cannot be empty")
	}

	m := &Model{
		name:     name,
		schema:   s,
		store:    store,
		recorder: NopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.logger = m.logger.With("collection", name)
	return m, nil
}

// Name returns the canonical collection name.
func (m *Model) Name() string {
	return m.name
}

// Schema returns the bound schema.
func (m *Model) Schema() *schema.Schema {
	return m.schema
}

// Create fills defaults into data, validates the result and appends it to
// the collection. Validation failures abort before anything is written.
// Fields the schema does not declare are dropped rather than rejected.
func (m *Model) Create(data types.Document) (*Handle, error) {
	m.recorder.RecordInteraction()

	doc := m.schema.ApplyDefaults(data)
	if err := m.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("failed to create document in %s: %w", m.name, err)
	}
	if m.schema.IDDisabled() {
		delete(doc, types.IDField)
	} else if id, _ := doc[types.IDField].(string); id == "" {
		doc[types.IDField] = m.schema.Generator().Generate()
	}

	// Return the document exactly as it will read back from disk.
	doc, err := storage.Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create document in %s: %w", m.name, err)
	}

	docs, err := m.store.Load(m.name)
	if err != nil {
		return nil, err
	}
	docs = append(docs, doc.Clone())
	if err := m.store.Save(m.name, docs); err != nil {
		return nil, err
	}

	m.logger.Debug("document created", "id", doc.ID())
	return m.handle(doc), nil
}

// FindOne returns the first document matching p in storage order, with
// defaults re-applied, or nil when nothing matches. A nil predicate matches
// every document.
func (m *Model) FindOne(p types.Predicate) (*Handle, error) {
	m.recorder.RecordInteraction()

	docs, err := m.store.Load(m.name)
	if err != nil {
		return nil, err
	}
	p = orAll(p)
	for _, d := range docs {
		if !p(d) {
			continue
		}
		doc, err := m.prepare(d)
		if err != nil {
			return nil, err
		}
		return m.handle(doc), nil
	}
	return nil, nil
}

// FindByID returns the document with the given identifier, or nil.
func (m *Model) FindByID(id string) (*Handle, error) {
	return m.FindOne(ByID(id))
}

// FindMany returns every document matching p in storage order, with
// defaults re-applied. The result is never nil.
func (m *Model) FindMany(p types.Predicate) ([]types.Document, error) {
	m.recorder.RecordInteraction()

	docs, err := m.store.Load(m.name)
	if err != nil {
		return nil, err
	}
	p = orAll(p)
	out := []types.Document{}
	for _, d := range docs {
		if !p(d) {
			continue
		}
		doc, err := m.prepare(d)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// Count returns the number of documents matching p.
func (m *Model) Count(p types.Predicate) (int, error) {
	m.recorder.RecordInteraction()

	docs, err := m.store.Load(m.name)
	if err != nil {
		return 0, err
	}
	p = orAll(p)
	n := 0
	for _, d := range docs {
		if p(d) {
			n++
		}
	}
	return n, nil
}

// Save upserts doc by _id: the stored document with the same identifier is
// replaced in place, otherwise doc is appended. A document carrying a field
// the schema does not declare is rejected before anything is written. doc is
// returned unchanged.
func (m *Model) Save(doc types.Document) (types.Document, error) {
	m.recorder.RecordInteraction()

	if err := m.upsert(doc, doc.ID()); err != nil {
		return nil, err
	}
	return doc, nil
}

// Persist saves the handle's document, replacing the stored document the
// handle was read from even if the caller changed its _id.
func (m *Model) Persist(h *Handle) error {
	if h == nil || h.model != m {
		return fmt.Errorf("handle does not belong to collection %s", m.name)
	}
	m.recorder.RecordInteraction()

	if err := m.upsert(h.Doc, h.id); err != nil {
		return err
	}
	h.id = h.Doc.ID()
	return nil
}

func (m *Model) upsert(doc types.Document, id string) error {
	if doc == nil {
		return fmt.Errorf("failed to save document in %s: document is nil", m.name)
	}
	if undeclared := m.schema.Undeclared(doc); len(undeclared) > 0 {
		err := &types.SchemaError{Kind: types.UndeclaredField, Path: undeclared[0]}
		return fmt.Errorf("failed to save document in %s: %w", m.name, err)
	}
	stored, err := storage.Normalize(doc)
	if err != nil {
		return fmt.Errorf("failed to save document in %s: %w", m.name, err)
	}

	docs, err := m.store.Load(m.name)
	if err != nil {
		return err
	}
	replaced := false
	if id != "" {
		for i, d := range docs {
			if d.ID() == id {
				docs[i] = stored
				replaced = true
				break
			}
		}
	}
	if !replaced {
		docs = append(docs, stored)
	}
	if err := m.store.Save(m.name, docs); err != nil {
		return err
	}

	m.logger.Debug("document saved", "id", stored.ID(), "replaced", replaced)
	return nil
}

// DeleteOne removes the first document matching p and reports whether one
// was removed. The file is not rewritten when nothing matches.
func (m *Model) DeleteOne(p types.Predicate) (bool, error) {
	m.recorder.RecordInteraction()

	docs, err := m.store.Load(m.name)
	if err != nil {
		return false, err
	}
	p = orAll(p)
	for i, d := range docs {
		if !p(d) {
			continue
		}
		docs = append(docs[:i], docs[i+1:]...)
		if err := m.store.Save(m.name, docs); err != nil {
			return false, err
		}
		m.logger.Debug("document deleted", "id", d.ID())
		return true, nil
	}
	return false, nil
}

// DeleteMany removes every document matching p and returns how many were
// removed.
func (m *Model) DeleteMany(p types.Predicate) (int, error) {
	m.recorder.RecordInteraction()

	docs, err := m.store.Load(m.name)
	if err != nil {
		return 0, err
	}
	p = orAll(p)
	kept := docs[:0]
	for _, d := range docs {
		if !p(d) {
			kept = append(kept, d)
		}
	}
	removed := len(docs) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := m.store.Save(m.name, kept); err != nil {
		return 0, err
	}
	m.logger.Debug("documents deleted", "count", removed)
	return removed, nil
}

// Wipe empties the collection. It always returns true on success.
func (m *Model) Wipe() (bool, error) {
	m.recorder.RecordInteraction()

	if err := m.store.Wipe(m.name); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Model) prepare(stored types.Document) (types.Document, error) {
	doc, err := storage.Normalize(m.schema.ApplyDefaults(stored))
	if err != nil {
		return nil, fmt.Errorf("failed to read document from %s: %w", m.name, err)
	}
	return doc, nil
}

func (m *Model) handle(doc types.Document) *Handle {
	return &Handle{Doc: doc, model: m, id: doc.ID()}
}
