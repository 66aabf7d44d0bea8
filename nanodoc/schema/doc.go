// Package schema declares document structure and implements defaulting and
// validation.
//
// A Schema is an ordered list of fields, each bound to a declaration. A
// declaration is one of a closed set of variants:
//
//	Primitive  a bare type marker:             schema.Of(schema.String)
//	Described  type with default / required:   schema.Desc(schema.Number, schema.Default(18))
//	Nested     a nested schema:                schema.Nest(schema.F("city", schema.Of(schema.String)))
//	Sequence   a sequence, optionally typed:   schema.SeqOf(schema.Of(schema.String))
//	Literal    a raw value used as default:    schema.Raw("guest")
//
// ApplyDefaults and Validate are deliberately asymmetric. ApplyDefaults drops
// fields the schema does not declare, so creating a document silently strips
// unknown fields, while Validate rejects them. The required flag is advisory
// unless the schema is built WithStrictRequired.
//
// Schemas are immutable once built and safe to share between goroutines.
package schema
