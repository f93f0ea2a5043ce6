package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/srcpages/srcpages/internal/source"
)

const manifestName = "links.txt"

// buildManifest resolves every file under root and writes the results to fs
// as tab-separated "path url" lines. Files with no link are skipped, as are
// hidden directories.
func buildManifest(fs billy.Filesystem, root string, links source.Links, op source.Op) error {
	var buf bytes.Buffer
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if url, ok := links.Resolve(rel, 0, op); ok {
			fmt.Fprintf(&buf, "%s\t%s\n", rel, url)
		}
		return nil
	})
	if err != nil {
		return err
	}

	f, err := fs.Create(manifestName)
	if err != nil {
		return err
	}
	_, err = f.Write(buf.Bytes())
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
