// Package ids generates and validates document identifiers.
//
// An identifier is a fixed prefix, a colon and a random RFC 4122 version 4
// UUID in canonical dashed lower-case hexadecimal:
//
//	nano:3f2b8c1e-9d4a-4b7e-a1c3-0e5f6d7a8b9c
//
// The version nibble is always 4 and the variant nibble one of 8, 9, a or b.
// Generation never consults existing collections; collisions are treated as
// negligible.
package ids
