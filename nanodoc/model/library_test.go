package model_test

import (
	"testing"

	"github.com/arthur-debert/nanodoc/nanodoc/model"
	"github.com/arthur-debert/nanodoc/testutil"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/go-cmp/cmp"
)

const leGuin = "Ursula K. Le Guin"

func titles(docs []types.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		title, _ := doc["title"].(string)
		out = append(out, title)
	}
	return out
}

func TestLibraryFindManyKeepsStorageOrder(t *testing.T) {
	lib := testutil.LoadLibrary(t)

	docs, err := lib.Books.FindMany(model.Match(types.Document{"author": leGuin}))
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if diff := cmp.Diff(titles(lib.ByAuthor(leGuin)), titles(docs)); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}

	all, err := lib.Books.FindMany(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(titles(lib.Documents), titles(all)); diff != "" {
		t.Errorf("storage order mismatch (-want +got):\n%s", diff)
	}
	for _, doc := range all {
		if !doc.Has("available") {
			t.Errorf("%v: expected defaults re-applied", doc["title"])
		}
	}
}

func TestLibraryCount(t *testing.T) {
	lib := testutil.LoadLibrary(t)

	tests := []struct {
		name string
		p    types.Predicate
		want int
	}{
		{"all", nil, 4},
		{"by author", model.Match(types.Document{"author": leGuin}), 2},
		{"by year", model.Match(types.Document{"year": 1965}), 1},
		{"not by author", model.Not(model.Match(types.Document{"author": leGuin})), 2},
		{"no match", model.Match(types.Document{"author": "nobody"}), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lib.Books.Count(tt.p)
			if err != nil || got != tt.want {
				t.Errorf("Count = %d, %v; want %d", got, err, tt.want)
			}
		})
	}
}

func TestLibraryDeleteMany(t *testing.T) {
	lib := testutil.LoadLibrary(t)

	n, err := lib.Books.DeleteMany(model.Match(types.Document{"author": leGuin}))
	if err != nil || n != 2 {
		t.Fatalf("DeleteMany = %d, %v; want 2", n, err)
	}
	left := testutil.ReadCollection(t, lib.Store, testutil.BooksCollection)
	if diff := cmp.Diff([]string{"Dune", "Kindred"}, titles(left)); diff != "" {
		t.Errorf("remaining titles mismatch (-want +got):\n%s", diff)
	}
}

func TestLibraryDeleteOneRemovesFirstMatch(t *testing.T) {
	lib := testutil.LoadLibrary(t)

	ok, err := lib.Books.DeleteOne(model.Match(types.Document{"author": leGuin}))
	if err != nil || !ok {
		t.Fatalf("DeleteOne = %v, %v", ok, err)
	}
	left := testutil.ReadCollection(t, lib.Store, testutil.BooksCollection)
	want := []string{"A Wizard of Earthsea", "Dune", "Kindred"}
	if diff := cmp.Diff(want, titles(left)); diff != "" {
		t.Errorf("remaining titles mismatch (-want +got):\n%s", diff)
	}
}

func TestLibrarySaveReplacesInPlace(t *testing.T) {
	lib := testutil.LoadLibrary(t)

	h, err := lib.Books.FindByID(lib.Dune.ID())
	if err != nil || h == nil {
		t.Fatalf("FindByID failed: %v, %v", h, err)
	}
	h.Doc["year"] = 1966
	if err := h.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	docs := testutil.ReadCollection(t, lib.Store, testutil.BooksCollection)
	if diff := cmp.Diff(titles(lib.Documents), titles(docs)); diff != "" {
		t.Errorf("order changed (-want +got):\n%s", diff)
	}
	if docs[2]["year"] != float64(1966) {
		t.Errorf("expected updated year, got %v", docs[2]["year"])
	}
}

func TestLibraryCreateAppends(t *testing.T) {
	lib := testutil.LoadLibrary(t)

	h, err := lib.Books.Create(types.Document{
		"title":  "Parable of the Sower",
		"author": "Octavia E. Butler",
		"year":   1993,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	docs, err := lib.Books.FindMany(model.Match(types.Document{"author": "Octavia E. Butler"}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Kindred", "Parable of the Sower"}, titles(docs)); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if docs[1].ID() != h.ID() {
		t.Errorf("expected created document last, got %v", docs[1].ID())
	}
}
