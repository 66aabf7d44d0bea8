// Package export snapshots collections into a zip archive and restores them.
//
// An archive holds one <name>.col.json entry per collection, byte-for-byte
// in the collection file format, plus a manifest.json describing them.
package export
