package testutil

import (
	_ "embed"
	"testing"

	"github.com/arthur-debert/nanodoc/nanodoc/model"
	"github.com/arthur-debert/nanodoc/nanodoc/schema"
	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
)

//go:embed testdata/books.json
var booksFixture []byte

// BooksCollection is the collection the library fixture is stored in.
const BooksCollection = "books"

// Library provides typed access to the books fixture
type Library struct {
	Store  *storage.Store
	FS     *storage.MockFileSystem
	Books  *model.Model
	Schema *schema.Schema

	// Fixture documents as stored, in file order
	LeftHand  types.Document // Le Guin, scifi, with details
	Earthsea  types.Document // Le Guin, fantasy, not available
	Dune      types.Document // scifi, no details
	Kindred   types.Document // empty tags, partial details
	ByTitle   map[string]types.Document
	Documents []types.Document
}

// BookSchema returns the schema of the books fixture.
func BookSchema() *schema.Schema {
	return schema.MustNew([]schema.Field{
		schema.F("title", schema.Desc(schema.String, schema.Required())),
		schema.F("author", schema.Of(schema.String)),
		schema.F("year", schema.Of(schema.Number)),
		schema.F("tags", schema.SeqOf(schema.Of(schema.String))),
		schema.F("available", schema.Desc(schema.Boolean, schema.Default(true))),
		schema.F("details", schema.Nest(
			schema.F("pages", schema.Desc(schema.Number)),
			schema.F("publisher", schema.Desc(schema.String, schema.Default("unknown"))),
		)),
	})
}

// NewMockStore returns a store rooted at /db backed by an in-memory file
// system and lock factory.
func NewMockStore(t *testing.T, opts ...storage.Option) (*storage.Store, *storage.MockFileSystem) {
	t.Helper()
	mockFS := storage.NewMockFileSystem()
	base := []storage.Option{
		storage.WithFileSystem(mockFS),
		storage.WithFileLockFactory(storage.NewMockFileLockFactory()),
	}
	return storage.New("/db", append(base, opts...)...), mockFS
}

// LoadLibrary returns an in-memory store holding the books fixture and a
// model bound to it
func LoadLibrary(t *testing.T) *Library {
	t.Helper()

	store, mockFS := NewMockStore(t)
	mockFS.SetFileContent(store.Path(BooksCollection), booksFixture)

	docs, err := store.Load(BooksCollection)
	if err != nil {
		t.Fatalf("failed to load books fixture: %v", err)
	}

	s := BookSchema()
	books, err := model.New(store, BooksCollection, s)
	if err != nil {
		t.Fatalf("failed to create books model: %v", err)
	}

	lib := &Library{
		Store:     store,
		FS:        mockFS,
		Books:     books,
		Schema:    s,
		ByTitle:   make(map[string]types.Document, len(docs)),
		Documents: docs,
	}
	for _, doc := range docs {
		title, _ := doc["title"].(string)
		lib.ByTitle[title] = doc
	}
	lib.LeftHand = lib.ByTitle["The Left Hand of Darkness"]
	lib.Earthsea = lib.ByTitle["A Wizard of Earthsea"]
	lib.Dune = lib.ByTitle["Dune"]
	lib.Kindred = lib.ByTitle["Kindred"]
	return lib
}

// ByAuthor returns the fixture documents written by author, in file order
func (l *Library) ByAuthor(author string) []types.Document {
	var out []types.Document
	for _, doc := range l.Documents {
		if doc["author"] == author {
			out = append(out, doc)
		}
	}
	return out
}

// ReadCollection loads a collection, failing the test on error.
func ReadCollection(t *testing.T, store *storage.Store, name string) []types.Document {
	t.Helper()
	docs, err := store.LoadExisting(name)
	if err != nil {
		t.Fatalf("failed to read collection %s: %v", name, err)
	}
	return docs
}
