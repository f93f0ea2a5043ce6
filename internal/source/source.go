// Package source resolves project file paths to browsable source code URLs,
// like https://github.com/org/repo/blob/main/pkg/file.go#L10.
//
// Link variants are built from configuration directives by Parse, collected
// into a Links set by Load, and queried with Resolve. A Links value is
// immutable once built, so it is safe to share across concurrent readers.
package source

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"
)

// Op selects which forge page a resolved link points to.
type Op string

const (
	// OpView links to a read-only view of the file.
	OpView Op = "view"
	// OpEdit links to the forge's editor for the file.
	OpEdit Op = "edit"
)

// Variant renders one style of source link. The set of implementations is
// closed: parse directives with Parse to obtain one.
type Variant interface {
	// Render maps a project-relative, slash-separated path to a URL string.
	// A line of 0 means no line number.
	Render(path string, op Op, line int) string

	// constraint returns the path prefix this variant applies to, or "" when
	// it applies to every path.
	constraint() string
}

// prefixed wraps another variant and narrows it to paths under prefix.
// The prefix is stripped before delegating.
type prefixed struct {
	prefix string
	base   Variant
}

func (p prefixed) constraint() string { return p.prefix }

func (p prefixed) Render(path string, op Op, line int) string {
	rel := strings.TrimPrefix(path, p.prefix)
	rel = strings.TrimPrefix(rel, "/")
	return p.base.Render(rel, op, line)
}

// templateVars are the values available inside a link template.
type templateVars struct {
	Path string
	Op   string
	Line string // empty when no line number
}

// templated renders through a Go text template using {{.Path}}, {{.Op}} and
// {{.Line}}.
type templated struct {
	tmpl *template.Template
}

func (t templated) constraint() string { return "" }

func (t templated) Render(path string, op Op, line int) string {
	vars := templateVars{Path: path, Op: string(op)}
	if line > 0 {
		vars.Line = strconv.Itoa(line)
	}
	var buf bytes.Buffer
	// Templates are trial-rendered at parse time, so this cannot fail for
	// well-formed inputs.
	panicIfErr(t.tmpl.Execute(&buf, vars))
	return buf.String()
}

// forge renders links for a well-known code forge by concatenation.
// prefix is the repository web URL, e.g. "https://github.com/org/repo" or
// "https://gitlab.com/org/repo/-". subpath is either empty or begins with "/".
type forge struct {
	prefix   string
	revision string
	subpath  string
}

func (f forge) constraint() string { return "" }

func (f forge) Render(path string, op Op, line int) string {
	action := string(op)
	if op == OpView {
		action = "blob"
	}
	url := f.prefix + "/" + action + "/" + f.revision + f.subpath + "/" + path
	if line > 0 {
		url += "#L" + strconv.Itoa(line)
	}
	return url
}

func panicIfErr(err error) {
	if err != nil {
		panic(err)
	}
}
