package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		description     string
		directive       string
		defaultRevision string
		expect          Variant
		expectErr       string
	}{
		{
			description: "github shorthand with revision",
			directive:   "github://org/repo/main",
			expect:      forge{prefix: "https://github.com/org/repo", revision: "main"},
		},
		{
			description:     "github shorthand with default revision",
			directive:       "github://org/repo",
			defaultRevision: "v1.0.0",
			expect:          forge{prefix: "https://github.com/org/repo", revision: "v1.0.0"},
		},
		{
			description: "github shorthand without any revision",
			directive:   "github://org/repo",
			expectErr:   "no revision provided for github://org/repo and no default revision set",
		},
		{
			description: "gitlab shorthand",
			directive:   "gitlab://org/repo/main",
			expect:      forge{prefix: "https://gitlab.com/org/repo/-", revision: "main"},
		},
		{
			description: "shorthand with subpath",
			directive:   "github://org/repo/main#src/library",
			expect:      forge{prefix: "https://github.com/org/repo", revision: "main", subpath: "/src/library"},
		},
		{
			description: "unknown provider",
			directive:   "bitbucket://org/repo/main",
			expectErr:   `unknown provider "bitbucket", use a full link template instead`,
		},
		{
			description: "malformed github shorthand",
			directive:   "github://org",
			expectErr:   `invalid source link "github://org", expected <provider>://<organization>/<repository>[/revision][#subpath]`,
		},
		{
			description: "multi-segment revision is malformed",
			directive:   "github://org/repo/feature/branch",
			expectErr:   `invalid source link "github://org/repo/feature/branch", expected <provider>://<organization>/<repository>[/revision][#subpath]`,
		},
		{
			description: "subpath wrapper",
			directive:   "docs=github://org/repo/main",
			expect: prefixed{
				prefix: "docs",
				base:   forge{prefix: "https://github.com/org/repo", revision: "main"},
			},
		},
		{
			description: "nested subpath wrappers rejected",
			directive:   "docs=other=github://org/repo/main",
			expectErr:   `duplicated subpath setting in "docs=other=github://org/repo/main"`,
		},
		{
			description: "subpath wrapper propagates nested errors",
			directive:   "docs=github://org/repo",
			expectErr:   "no revision provided for github://org/repo and no default revision set",
		},
		{
			description: "legacy placeholder pattern",
			directive:   "€{FILE_PATH_EXT}#L€{FILE_LINE}",
		},
		{
			description: "legacy pattern with unsupported placeholders",
			directive:   "€{TPL_NAME}/€{FILE_PATH}.html",
			expectErr:   "unsupported legacy placeholders: €{TPL_NAME}, €{FILE_PATH}",
		},
		{
			description: "generic template",
			directive:   "https://example.com/org/repo/blob/main/{{.Path}}{{if .Line}}#L{{.Line}}{{end}}",
		},
		{
			description: "short URL template collides with provider shorthand",
			directive:   "https://example.com/{{.Path}}",
			expectErr:   `unknown provider "https"`,
		},
		{
			description: "invalid template syntax",
			directive:   "{{.Path",
			expectErr:   "invalid link template",
		},
		{
			description: "template with unknown variable",
			directive:   "src/{{.Bogus}}/view",
			expectErr:   "invalid link template",
		},
	} {
		tc := tc // enable parallel sub-tests
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			variant, err := Parse(tc.directive, tc.defaultRevision)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			if tc.expect != nil {
				assert.Equal(t, tc.expect, variant)
			}
		})
	}
}

func TestParseLegacyConversion(t *testing.T) {
	t.Parallel()
	variant, err := Parse("https://example.com/org/repo/blob/main/€{FILE_PATH_EXT}#L€{FILE_LINE}", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/org/repo/blob/main/pkg/file.go#L12", variant.Render("pkg/file.go", OpView, 12))
	assert.Equal(t, "https://example.com/org/repo/blob/main/pkg/file.go#L", variant.Render("pkg/file.go", OpView, 0))
}
