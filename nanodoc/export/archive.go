package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
	json "github.com/goccy/go-json"
)

// ManifestName is the archive entry describing its contents.
const ManifestName = "manifest.json"

// Manifest describes an archive.
type Manifest struct {
	Created     time.Time `json:"created"`
	Collections []Entry   `json:"collections"`
}

// Entry describes one archived collection.
type Entry struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	Documents int    `json:"documents"`
}

// Snapshot is the decoded content of an archive.
type Snapshot struct {
	Manifest    Manifest
	Collections map[string][]types.Document
}

// Archive writes the named collections to w as a zip archive. With no names,
// every user collection in the store is archived. Collections must already
// exist; a missing one fails with types.ErrMissingCollection.
func Archive(store *storage.Store, names []string, w io.Writer) (*Manifest, error) {
	if len(names) == 0 {
		listed, err := store.List()
		if err != nil {
			return nil, err
		}
		names = listed
	}

	manifest := &Manifest{Created: time.Now().UTC(), Collections: make([]Entry, 0, len(names))}
	zw := zip.NewWriter(w)

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		canonical := store.ResolveName(name)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		docs, err := store.LoadExisting(canonical)
		if err != nil {
			return nil, err
		}
		data, err := storage.Encode(docs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode collection %s: %w", canonical, err)
		}
		entry := Entry{Name: canonical, File: canonical + storage.Extension, Documents: len(docs)}
		if err := addFile(zw, entry.File, data, manifest.Created); err != nil {
			return nil, err
		}
		manifest.Collections = append(manifest.Collections, entry)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := addFile(zw, ManifestName, data, manifest.Created); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return manifest, nil
}

// Extract reads an archive produced by Archive.
func Extract(r io.ReaderAt, size int64) (*Snapshot, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	snap := &Snapshot{Collections: make(map[string][]types.Document)}
	foundManifest := false
	for _, f := range zr.File {
		data, err := readFile(f)
		if err != nil {
			return nil, err
		}
		switch {
		case f.Name == ManifestName:
			if err := json.Unmarshal(data, &snap.Manifest); err != nil {
				return nil, fmt.Errorf("failed to parse manifest: %w", err)
			}
			foundManifest = true
		case strings.HasSuffix(f.Name, storage.Extension) && path.Dir(f.Name) == ".":
			docs, err := storage.Decode(data)
			if err != nil {
				return nil, fmt.Errorf("archived collection %s: %w", f.Name, err)
			}
			snap.Collections[strings.TrimSuffix(f.Name, storage.Extension)] = docs
		}
	}
	if !foundManifest {
		return nil, fmt.Errorf("archive has no %s", ManifestName)
	}
	return snap, nil
}

// Restore overwrites each collection in the snapshot and returns the
// restored names, sorted.
func Restore(store *storage.Store, snap *Snapshot) ([]string, error) {
	names := make([]string, 0, len(snap.Collections))
	for name := range snap.Collections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := store.Save(name, snap.Collections[name]); err != nil {
			return nil, fmt.Errorf("failed to restore %s: %w", name, err)
		}
	}
	return names, nil
}

// Filename returns a timestamped archive file name.
func Filename(now time.Time) string {
	return "nanodoc-export-" + now.UTC().Format("20060102-150405") + ".zip"
}

func addFile(zw *zip.Writer, name string, data []byte, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create %s in archive: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return data, nil
}
