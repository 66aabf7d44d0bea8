package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/nanodoc/types"
)

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 50 * time.Millisecond
	lockSuffix     = ".lock"
	tmpSuffix      = ".tmp"
	filePerm       = 0644
	dirPerm        = 0755
)

// Store persists collections as files below a root directory.
type Store struct {
	root    string
	metaDir string
	aliases map[string]string
	atomic  bool

	fs          FileSystem
	lockFactory FileLockFactory
	logger      *slog.Logger
}

// New creates a store rooted at dir. Nothing is touched on disk until the
// first operation; call EnsurePath to create the directories eagerly.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		root:    dir,
		aliases: make(map[string]string, len(builtinAliases)),
	}
	for short, name := range builtinAliases {
		s.aliases[short] = name
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.fs == nil {
		s.fs = OSFileSystem{}
	}
	if s.lockFactory == nil {
		s.lockFactory = FlockFactory{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.metaDir == "" {
		s.metaDir = filepath.Join(dir, ".meta")
	}
	return s
}

// Root returns the directory holding user collections.
func (s *Store) Root() string {
	return s.root
}

// MetaDir returns the directory holding the built-in metadata collections.
func (s *Store) MetaDir() string {
	return s.metaDir
}

// EnsurePath creates the root and metadata directories if absent.
func (s *Store) EnsurePath() error {
	for _, dir := range []string{s.root, s.metaDir} {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Path returns the file backing a collection, after alias resolution.
func (s *Store) Path(name string) string {
	name = s.ResolveName(name)
	if IsBuiltin(name) {
		return filepath.Join(s.metaDir, name+Extension)
	}
	return filepath.Join(s.root, name+Extension)
}

// Exists reports whether the collection file exists.
func (s *Store) Exists(name string) bool {
	_, err := s.fs.Stat(s.Path(name))
	return err == nil
}

// Load reads the whole collection. A missing collection file is created
// holding an empty sequence. Unparseable content yields an error matching
// types.ErrCorruptCollection.
func (s *Store) Load(name string) ([]types.Document, error) {
	return s.load(name, true)
}

// LoadExisting is like Load but fails with types.ErrMissingCollection
// instead of creating the file.
func (s *Store) LoadExisting(name string) ([]types.Document, error) {
	return s.load(name, false)
}

func (s *Store) load(name string, create bool) ([]types.Document, error) {
	canonical := s.ResolveName(name)
	if err := validateName(canonical); err != nil {
		return nil, err
	}
	path := s.Path(canonical)

	var data []byte
	err := s.withLock(path, func() error {
		var err error
		data, err = s.fs.ReadFile(path)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return s.fail("load", canonical, path, types.ErrStorage, err)
		}
		if !create {
			return s.fail("load", canonical, path, types.ErrMissingCollection, nil)
		}
		if err := s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return s.fail("create", canonical, path, types.ErrStorage, err)
		}
		if err := s.fs.WriteFile(path, emptyCollection, filePerm); err != nil {
			return s.fail("create", canonical, path, types.ErrStorage, err)
		}
		s.logger.Debug("collection created", "collection", canonical, "path", path)
		data = emptyCollection
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs, err := Decode(data)
	if err != nil {
		return nil, s.fail("load", canonical, path, types.ErrCorruptCollection, err)
	}
	s.logger.Debug("collection loaded", "collection", canonical, "documents", len(docs))
	return docs, nil
}

// Save overwrites the collection file with docs in a single write.
func (s *Store) Save(name string, docs []types.Document) error {
	canonical := s.ResolveName(name)
	if err := validateName(canonical); err != nil {
		return err
	}
	path := s.Path(canonical)

	data, err := Encode(docs)
	if err != nil {
		return s.fail("save", canonical, path, types.ErrStorage, err)
	}

	err = s.withLock(path, func() error {
		if err := s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return s.fail("save", canonical, path, types.ErrStorage, err)
		}
		if err := s.write(path, data); err != nil {
			return s.fail("save", canonical, path, types.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("collection saved", "collection", canonical, "documents", len(docs))
	return nil
}

// Wipe truncates the collection to an empty sequence.
func (s *Store) Wipe(name string) error {
	if err := s.Save(name, nil); err != nil {
		return err
	}
	s.logger.Info("collection wiped", "collection", s.ResolveName(name))
	return nil
}

// Delete removes the collection file. Deleting a collection that does not
// exist fails with types.ErrMissingCollection.
func (s *Store) Delete(name string) error {
	canonical := s.ResolveName(name)
	if err := validateName(canonical); err != nil {
		return err
	}
	path := s.Path(canonical)

	err := s.withLock(path, func() error {
		if err := s.fs.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return s.fail("delete", canonical, path, types.ErrMissingCollection, nil)
			}
			return s.fail("delete", canonical, path, types.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	_ = s.fs.Remove(path + lockSuffix)
	s.logger.Info("collection deleted", "collection", canonical)
	return nil
}

// List returns the names of the user collections in the root directory,
// sorted. A missing root directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) write(path string, data []byte) error {
	if !s.atomic {
		return s.fs.WriteFile(path, data, filePerm)
	}
	tmp := path + tmpSuffix
	if err := s.fs.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// withLock runs fn while holding the advisory lock of one collection file.
// The lock covers a single read or write, never a load/mutate/save cycle.
func (s *Store) withLock(path string, fn func() error) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	lock := s.lockFactory.New(path + lockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return &types.CollectionError{Op: "lock", Name: filepath.Base(path), Path: path, Kind: types.ErrStorage, Err: err}
	}
	if !locked {
		return &types.CollectionError{Op: "lock", Name: filepath.Base(path), Path: path, Kind: types.ErrStorage,
			Err: fmt.Errorf("could not acquire file lock")}
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release file lock", "path", path, "err", err)
		}
	}()

	return fn()
}

func (s *Store) fail(op, name, path string, kind, err error) error {
	ce := &types.CollectionError{Op: op, Name: name, Path: path, Kind: kind, Err: err}
	s.logger.Warn("collection operation failed", "op", op, "collection", name, "err", ce)
	return ce
}
