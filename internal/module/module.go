// Package module locates the Go module enclosing a directory.
package module

import (
	"os"
	"path/filepath"

	"github.com/johnstarich/go/pipe"
	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
)

// Find walks up from dir to the nearest directory containing a go.mod file,
// returning the module's package path and the absolute root directory.
func Find(dir string) (modulePackage, root string, err error) {
	root, err = filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		goMod := filepath.Join(root, "go.mod")
		if _, statErr := os.Stat(goMod); statErr == nil {
			modulePackage, err = packageName(goMod)
			return modulePackage, root, err
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", "", errors.Errorf("go.mod not found in %q or any parent directory", dir)
		}
		root = parent
	}
}

func packageName(goMod string) (string, error) {
	buf, err := os.ReadFile(goMod)
	if err != nil {
		return "", err
	}
	modulePackage := modfile.ModulePath(buf)
	err = pipe.CheckErrorf(modulePackage == "", "unable to find module package name in go.mod file: %s", goMod)
	return modulePackage, err
}
