package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/arthur-debert/nanodoc/testutil"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/go-cmp/cmp"
)

func TestArchive(t *testing.T) {
	store, mockFS := testutil.NewMockStore(t)
	users := `[
  {
    "_id": "u1",
    "name": "ann"
  }
]`
	mockFS.SetFileContent("/db/users.col.json", []byte(users))
	mockFS.SetFileContent("/db/posts.col.json", []byte(`[]`))
	mockFS.SetFileContent("/db/.meta/runtime.col.json", []byte(`[{"uptime": 3}]`))

	t.Run("all user collections", func(t *testing.T) {
		var buf bytes.Buffer
		manifest, err := Archive(store, nil, &buf)
		if err != nil {
			t.Fatalf("Archive failed: %v", err)
		}
		want := []Entry{
			{Name: "posts", File: "posts.col.json", Documents: 0},
			{Name: "users", File: "users.col.json", Documents: 1},
		}
		if diff := cmp.Diff(want, manifest.Collections); diff != "" {
			t.Errorf("manifest mismatch (-want +got):\n%s", diff)
		}

		zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		if err != nil {
			t.Fatal(err)
		}
		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
			if f.Name == "users.col.json" {
				data, err := readFile(f)
				if err != nil {
					t.Fatal(err)
				}
				if string(data) != users {
					t.Errorf("archived content differs from collection file:\n%s", data)
				}
			}
		}
		if diff := cmp.Diff([]string{"posts.col.json", "users.col.json", ManifestName}, names); diff != "" {
			t.Errorf("archive entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("named collections and aliases", func(t *testing.T) {
		var buf bytes.Buffer
		manifest, err := Archive(store, []string{"rt", "runtime", "users"}, &buf)
		if err != nil {
			t.Fatalf("Archive failed: %v", err)
		}
		if len(manifest.Collections) != 2 || manifest.Collections[0].Name != "runtime" {
			t.Errorf("unexpected manifest %+v", manifest.Collections)
		}
	})

	t.Run("missing collection", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := Archive(store, []string{"nope"}, &buf)
		if !errors.Is(err, types.ErrMissingCollection) {
			t.Errorf("expected ErrMissingCollection, got %v", err)
		}
		if mockFS.FileExists("/db/nope.col.json") {
			t.Error("archiving must not create collections")
		}
	})
}

func TestExtractAndRestore(t *testing.T) {
	src, srcFS := testutil.NewMockStore(t)
	srcFS.SetFileContent("/db/users.col.json", []byte(`[{"_id": "u1", "age": 30}, {"_id": "u2"}]`))
	srcFS.SetFileContent("/db/empty.col.json", []byte(`[]`))

	var buf bytes.Buffer
	if _, err := Archive(src, nil, &buf); err != nil {
		t.Fatal(err)
	}

	snap, err := Extract(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	wantUsers := []types.Document{{"_id": "u1", "age": float64(30)}, {"_id": "u2"}}
	if diff := cmp.Diff(wantUsers, snap.Collections["users"]); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Manifest.Collections) != 2 {
		t.Errorf("unexpected manifest %+v", snap.Manifest)
	}

	dst, dstFS := testutil.NewMockStore(t)
	restored, err := Restore(dst, snap)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if diff := cmp.Diff([]string{"empty", "users"}, restored); diff != "" {
		t.Errorf("restored mismatch (-want +got):\n%s", diff)
	}
	got, err := dst.Load("users")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(wantUsers, got); diff != "" {
		t.Errorf("restored users mismatch (-want +got):\n%s", diff)
	}
	if content, _ := dstFS.GetFileContent("/db/empty.col.json"); string(content) != "[]" {
		t.Errorf("expected [], got %q", content)
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	lib := testutil.LoadLibrary(t)

	var buf bytes.Buffer
	manifest, err := Archive(lib.Store, []string{testutil.BooksCollection}, &buf)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	want := []Entry{{Name: testutil.BooksCollection, File: "books.col.json", Documents: len(lib.Documents)}}
	if diff := cmp.Diff(want, manifest.Collections); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}

	snap, err := Extract(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	dst, _ := testutil.NewMockStore(t)
	if _, err := Restore(dst, snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	got := testutil.ReadCollection(t, dst, testutil.BooksCollection)
	if diff := cmp.Diff(lib.Documents, got); diff != "" {
		t.Errorf("restored books mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRejectsForeignArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("readme.txt")
	_, _ = w.Write([]byte("hello"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Extract(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err == nil {
		t.Error("expected error for archive without manifest")
	}
	if _, err := Extract(bytes.NewReader([]byte("not a zip")), 9); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	if got := Filename(now); got != "nanodoc-export-20240305-140709.zip" {
		t.Errorf("unexpected filename %q", got)
	}
}
