// Command watch serves a live-updating manifest of source links for the
// current module. A file watcher rebuilds the manifest whenever files change,
// so generated links can be checked while editing link directives or moving
// files around.
//
// watch accepts the same flags as srcpages, path arguments are ignored.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/pkg/errors"
	"github.com/srcpages/srcpages/cmd"
	"github.com/srcpages/srcpages/internal/flags"
	"github.com/srcpages/srcpages/internal/gitrepo"
	"github.com/srcpages/srcpages/internal/module"
	"github.com/srcpages/srcpages/internal/source"
)

const lastUpdatedHeader = "Srcpages-Last-Updated"

func main() {
	args, usageOutput, err := flags.Parse(os.Args[1:]...)
	switch err {
	case nil:
	case flag.ErrHelp:
		fmt.Print(usageOutput)
		return
	default:
		fmt.Print(usageOutput)
		cmd.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	_, root, err := module.Find(wd)
	if err != nil {
		panic(err)
	}
	links, err := loadLinks(root, args)
	if err != nil {
		panic(err)
	}
	op := source.OpView
	if args.Edit {
		op = source.OpEdit
	}

	fs := memfs.New()
	var updatedTime string
	err = watch(ctx, root, func() error {
		err := buildManifest(fs, root, links, op)
		updatedTime = time.Now().Format(time.RFC3339)
		return err
	})
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(lastUpdatedHeader, updatedTime)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := copyManifest(w, fs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	server := http.Server{
		Addr:    ":8080",
		Handler: mux,
	}
	fmt.Println("Serving link manifest on :8080...")
	_ = server.ListenAndServe()
}

func loadLinks(root string, args flags.Args) (source.Links, error) {
	directives, revision, err := args.Directives()
	if err != nil {
		return source.Links{}, err
	}
	if len(directives) == 0 || revision == "" {
		directive, head, detectErr := gitrepo.Detect(root)
		if detectErr != nil && len(directives) == 0 {
			return source.Links{}, errors.Wrap(detectErr, "no source link directives configured and no repo to derive them from")
		}
		if detectErr == nil {
			if len(directives) == 0 {
				directives = []string{directive}
			}
			if revision == "" {
				revision = head
			}
		}
	}
	return source.Load(directives, revision, root, log.New(os.Stderr, "", 0)), nil
}

func copyManifest(w io.Writer, fs billy.Filesystem) error {
	f, err := fs.Open(manifestName)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
