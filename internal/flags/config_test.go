package flags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigFile(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "srcpages.yaml")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0600))
	return p
}

func TestDirectives(t *testing.T) {
	t.Parallel()

	t.Run("no config file", func(t *testing.T) {
		t.Parallel()
		args := Args{
			Links:    LinkDirectives{"github://org/repo/main"},
			Revision: "main",
		}
		directives, revision, err := args.Directives()
		require.NoError(t, err)
		assert.Equal(t, []string{"github://org/repo/main"}, directives)
		assert.Equal(t, "main", revision)
	})

	t.Run("config file directives come first", func(t *testing.T) {
		t.Parallel()
		args := Args{
			ConfigPath: testConfigFile(t, `
links:
  - docs=gitlab://org/docs/main
revision: v1.0.0
`),
			Links: LinkDirectives{"github://org/repo/main"},
		}
		directives, revision, err := args.Directives()
		require.NoError(t, err)
		assert.Equal(t, []string{"docs=gitlab://org/docs/main", "github://org/repo/main"}, directives)
		assert.Equal(t, "v1.0.0", revision)
	})

	t.Run("flag revision overrides config file", func(t *testing.T) {
		t.Parallel()
		args := Args{
			ConfigPath: testConfigFile(t, "revision: v1.0.0\n"),
			Revision:   "v2.0.0",
		}
		_, revision, err := args.Directives()
		require.NoError(t, err)
		assert.Equal(t, "v2.0.0", revision)
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()
		args := Args{ConfigPath: "/does/not/exist"}
		_, _, err := args.Directives()
		require.Error(t, err)
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()
		args := Args{ConfigPath: testConfigFile(t, "links: {not: a list}\n")}
		_, _, err := args.Directives()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config file")
	})
}
