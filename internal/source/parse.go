package source

import (
	"regexp"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

var (
	providerPattern  = regexp.MustCompile(`^(\w+)://([^/#]+)/([^/#]+)(/[^/#]+)?(?:#(.+))?$`)
	shorthandPattern = regexp.MustCompile(`^(?:github|gitlab)://`)
	subPathPattern   = regexp.MustCompile(`^([^=]+)=(.+)$`)
	legacyPattern    = regexp.MustCompile(`€\{(TPL_NAME|FILE_PATH|FILE_EXT|FILE_LINE|FILE_PATH_EXT)\}`)
)

// legacy placeholders with a direct template equivalent
var legacyReplacer = strings.NewReplacer(
	"€{FILE_PATH_EXT}", "{{.Path}}",
	"€{FILE_LINE}", "{{.Line}}",
)

// Parse builds a link Variant from one configuration directive.
// Recognized directive forms, in priority order:
//
//	github://<org>/<repo>[/revision][#subpath]
//	gitlab://<org>/<repo>[/revision][#subpath]
//	<subpath>=<directive>
//	legacy €{FILE_PATH_EXT} and €{FILE_LINE} placeholder patterns
//	any Go text template using {{.Path}}, {{.Op}} and {{.Line}}
//
// Provider shorthands without an explicit revision use defaultRevision.
func Parse(directive, defaultRevision string) (Variant, error) {
	if m := providerPattern.FindStringSubmatch(directive); m != nil {
		return parseProvider(m, defaultRevision)
	}
	if m := subPathPattern.FindStringSubmatch(directive); m != nil {
		return parseSubPath(m[1], m[2], defaultRevision)
	}
	if shorthandPattern.MatchString(directive) {
		return nil, errors.Errorf("invalid source link %q, expected <provider>://<organization>/<repository>[/revision][#subpath]", directive)
	}
	if legacyPattern.MatchString(directive) {
		converted, err := convertLegacy(directive)
		if err != nil {
			return nil, err
		}
		directive = converted
	}
	return parseTemplate(directive)
}

func parseProvider(match []string, defaultRevision string) (Variant, error) {
	name, org, repo, revision, subPath := match[1], match[2], match[3], match[4], match[5]
	var prefix string
	switch name {
	case "github":
		prefix = "https://github.com/" + org + "/" + repo
	case "gitlab":
		prefix = "https://gitlab.com/" + org + "/" + repo + "/-"
	default:
		return nil, errors.Errorf("unknown provider %q, use a full link template instead", name)
	}
	revision = strings.TrimPrefix(revision, "/")
	if revision == "" {
		revision = defaultRevision
	}
	if revision == "" {
		return nil, errors.Errorf("no revision provided for %s://%s/%s and no default revision set", name, org, repo)
	}
	if subPath != "" {
		subPath = "/" + subPath
	}
	return forge{prefix: prefix, revision: revision, subpath: subPath}, nil
}

func parseSubPath(prefix, rest, defaultRevision string) (Variant, error) {
	base, err := Parse(rest, defaultRevision)
	if err != nil {
		return nil, err
	}
	if _, ok := base.(prefixed); ok {
		return nil, errors.Errorf("duplicated subpath setting in %q", prefix+"="+rest)
	}
	return prefixed{prefix: strings.TrimSuffix(prefix, "/"), base: base}, nil
}

func convertLegacy(directive string) (string, error) {
	var unsupported []string
	for _, match := range legacyPattern.FindAllStringSubmatch(directive, -1) {
		switch match[1] {
		case "FILE_PATH_EXT", "FILE_LINE":
		default:
			unsupported = append(unsupported, match[0])
		}
	}
	if len(unsupported) > 0 {
		return "", errors.Errorf("unsupported legacy placeholders: %s", strings.Join(unsupported, ", "))
	}
	return legacyReplacer.Replace(directive), nil
}

func parseTemplate(directive string) (Variant, error) {
	tmpl, err := template.New("").Parse(directive)
	if err != nil {
		return nil, errors.Wrap(err, "invalid link template")
	}
	// Trial-render so rendering cannot fail later, e.g. on unknown variables.
	v := templated{tmpl: tmpl}
	if err := trialRender(v); err != nil {
		return nil, errors.Wrap(err, "invalid link template")
	}
	return v, nil
}

func trialRender(v templated) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if err, ok = r.(error); !ok {
				err = errors.Errorf("%v", r)
			}
		}
	}()
	v.Render("a/b.go", OpView, 1)
	v.Render("a/b.go", OpEdit, 0)
	return nil
}
