package ids

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/nanodoc/types"
	"github.com/google/uuid"
)

// DefaultPrefix is the literal prefix used when none is configured.
const DefaultPrefix = "nano"

// Default is the generator used by schemas that are not given one.
var Default = New(DefaultPrefix)

// Generator produces and validates identifiers for a single prefix.
type Generator struct {
	prefix  string
	pattern *regexp.Regexp
}

// New creates a generator for the given prefix. An empty prefix falls back
// to DefaultPrefix.
func New(prefix string) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Generator{
		prefix: prefix,
		pattern: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(prefix) +
			`:[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`),
	}
}

// Prefix returns the literal identifier prefix
func (g *Generator) Prefix() string {
	return g.prefix
}

// Generate returns a new identifier.
func (g *Generator) Generate() string {
	return g.prefix + ":" + uuid.NewString()
}

// IsValid reports whether s is a well-formed identifier for this prefix.
// Hex digits are matched case-insensitively.
func (g *Generator) IsValid(s string) bool {
	return g.pattern.MatchString(s)
}

// Parse extracts the UUID part of an identifier. It returns an
// *types.IdentifierFormatError when s is not valid.
func (g *Generator) Parse(s string) (uuid.UUID, error) {
	if !g.IsValid(s) {
		return uuid.Nil, &types.IdentifierFormatError{Value: s, Prefix: g.prefix}
	}
	return uuid.Parse(strings.ToLower(s[len(g.prefix)+1:]))
}

// Generate returns a new identifier with the default prefix.
func Generate() string {
	return Default.Generate()
}

// IsValid reports whether s is a well-formed identifier with the default
// prefix.
func IsValid(s string) bool {
	return Default.IsValid(s)
}

// Pattern returns the regular expression identifiers are validated against.
func (g *Generator) Pattern() string {
	return g.pattern.String()
}
