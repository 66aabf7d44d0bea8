// Package storage maps collection names to collection files.
//
// Each collection is one file, <name>.col.json, holding a pretty-printed JSON
// array of documents. Every operation reads or rewrites the whole file:
//
//	Load  -> parse the full file (creating "[]" on first access)
//	Save  -> serialise the full sequence and overwrite the file
//	Wipe  -> overwrite the file with "[]"
//
// There is no coordination of a load/mutate/save cycle. Two writers working
// on the same collection race and the last full rewrite wins. Each individual
// read or write holds an advisory file lock (<file>.lock) so that a reader
// never parses a file another cooperating process is halfway through writing.
//
// Collections named after the built-in metadata collections (runtime,
// interactions, settings, or their aliases rt, ic and set) live in a separate
// metadata directory; everything else lives in the root directory.
package storage
