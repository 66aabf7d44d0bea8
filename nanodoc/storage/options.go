package storage

import "log/slog"

// Option is a function that modifies Store configuration
type Option func(*Store)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) Option {
	return func(s *Store) {
		s.lockFactory = factory
	}
}

// WithMetaDir sets the directory holding the built-in metadata collections.
// Defaults to <root>/.meta.
func WithMetaDir(dir string) Option {
	return func(s *Store) {
		s.metaDir = dir
	}
}

// WithAliases adds shorthand collection names. Built-in aliases cannot be
// overridden.
func WithAliases(aliases map[string]string) Option {
	return func(s *Store) {
		for short, name := range aliases {
			if _, builtin := builtinAliases[short]; builtin {
				continue
			}
			s.aliases[short] = name
		}
	}
}

// WithAtomicWrites makes Save write a temporary file and rename it over the
// collection file, so a crash mid-write cannot truncate the collection.
func WithAtomicWrites() Option {
	return func(s *Store) {
		s.atomic = true
	}
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
