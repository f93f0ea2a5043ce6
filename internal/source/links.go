package source

import (
	"log"
	"path/filepath"
	"strings"
)

// Usage describes the accepted directive syntax, shown when directives fail
// to parse.
const Usage = `Source link directives can be one of:
  github://<organization>/<repository>[/revision][#subpath]
  gitlab://<organization>/<repository>[/revision][#subpath]
  <subpath>=<directive>
  a Go template producing a URL from {{.Path}}, {{.Op}} and {{.Line}}`

// Links resolves project file paths against an ordered set of link variants.
// The zero value resolves nothing.
type Links struct {
	root     string // absolute project root, slash-separated
	variants []Variant
}

// NewLinks builds a link set for the project rooted at root. Variants are
// consulted in order, first match wins.
func NewLinks(root string, variants ...Variant) Links {
	return Links{root: filepath.ToSlash(root), variants: variants}
}

// Load parses each directive and collects the successful variants into a
// Links set for the project rooted at root. Invalid directives do not fail
// the load: they are skipped and reported through logger as a single warning
// alongside the directive syntax help.
func Load(directives []string, defaultRevision, root string, logger *log.Logger) Links {
	var variants []Variant
	var invalid []string
	for _, directive := range directives {
		variant, err := Parse(directive, defaultRevision)
		if err != nil {
			invalid = append(invalid, directive+": "+err.Error())
			continue
		}
		variants = append(variants, variant)
	}
	if len(invalid) > 0 {
		logger.Printf("Ignoring invalid source link directives:\n  %s\n%s", strings.Join(invalid, "\n  "), Usage)
	}
	return NewLinks(root, variants...)
}

// Resolve maps a source file path to a URL. A line of 0 means no line number
// and an empty op defaults to OpView.
//
// Absolute paths must be inside the project root. Paths that are outside the
// root, or that no variant applies to, resolve to ("", false).
func (l Links) Resolve(path string, line int, op Op) (string, bool) {
	if op == "" {
		op = OpView
	}
	path = filepath.ToSlash(path)
	if filepath.IsAbs(filepath.FromSlash(path)) {
		rel, ok := trimPathPrefix(path, l.root)
		if !ok {
			return "", false
		}
		path = rel
	}
	for _, variant := range l.variants {
		constraint := variant.constraint()
		if constraint == "" || hasPathPrefix(path, constraint) {
			return variant.Render(path, op, line), true
		}
	}
	return "", false
}

// FileRef locates a position in a project source file. Line is zero-based,
// matching the positions reported by most parsers.
type FileRef struct {
	Path string
	Line int
}

// ResolveFile resolves a documentation entity's source file record, pointing
// at its one-based line. A nil ref yields no link.
func (l Links) ResolveFile(ref *FileRef, op Op) (string, bool) {
	if ref == nil {
		return "", false
	}
	return l.Resolve(ref.Path, ref.Line+1, op)
}

// hasPathPrefix reports whether prefix covers path on a path segment
// boundary, so "docs" covers "docs/a.go" but not "docs2/a.go".
func hasPathPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func trimPathPrefix(path, prefix string) (string, bool) {
	if !hasPathPrefix(path, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(path, strings.TrimSuffix(prefix, "/"))
	return strings.TrimPrefix(rel, "/"), true
}
