package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/srcpages/srcpages/cmd"
	"github.com/srcpages/srcpages/internal/annotate"
	"github.com/srcpages/srcpages/internal/flags"
	"github.com/srcpages/srcpages/internal/gitrepo"
	"github.com/srcpages/srcpages/internal/module"
	"github.com/srcpages/srcpages/internal/source"
)

func main() {
	mainArgs(run, os.Getwd, os.Args[1:]...)
}

func mainArgs(
	runner func(string, flags.Args, io.Writer) error,
	getWD func() (string, error),
	osArgs ...string,
) {
	args, usageOutput, err := flags.Parse(osArgs...)
	switch err {
	case nil:
	case flag.ErrHelp:
		fmt.Print(usageOutput)
		return
	default:
		fmt.Print(usageOutput)
		cmd.Exit(2)
	}

	wd, err := getWD()
	if err != nil {
		panic(errors.Wrap(err, "Failed to get current directory"))
	}

	if err := runner(wd, args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		cmd.Exit(1)
	}
}

func run(wd string, args flags.Args, out io.Writer) error {
	if len(args.Paths) == 0 {
		return errors.New("no paths given, pass one or more 'path[:line]' arguments")
	}
	links, err := loadLinks(wd, args, log.New(os.Stderr, "", 0))
	if err != nil {
		return err
	}
	op := source.OpView
	if args.Edit {
		op = source.OpEdit
	}

	if args.Annotate {
		fs := osfs.New("")
		for _, path := range args.Paths {
			abs := path
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(wd, abs)
			}
			if err := annotate.File(fs, abs, links, op); err != nil {
				return errors.Wrapf(err, "failed to annotate %q", path)
			}
		}
		return nil
	}

	for _, arg := range args.Paths {
		path, line := splitLine(arg)
		url, ok := links.Resolve(path, line, op)
		if !ok {
			fmt.Fprintf(out, "%s: no link\n", arg)
			continue
		}
		fmt.Fprintln(out, url)
	}
	return nil
}

// loadLinks builds the link set for the module containing wd.
// When no directives are configured, fall back to the repo's origin remote.
func loadLinks(wd string, args flags.Args, logger *log.Logger) (source.Links, error) {
	modulePackage, root, err := module.Find(wd)
	if err != nil {
		return source.Links{}, err
	}
	directives, revision, err := args.Directives()
	if err != nil {
		return source.Links{}, err
	}
	if len(directives) == 0 || revision == "" {
		directive, head, detectErr := gitrepo.Detect(root)
		switch {
		case detectErr != nil && len(directives) == 0:
			return source.Links{}, errors.Wrapf(detectErr, "no source link directives configured for module %s and no repo to derive them from", modulePackage)
		case detectErr == nil:
			if len(directives) == 0 {
				directives = []string{directive}
			}
			if revision == "" {
				revision = head
			}
		}
	}
	return source.Load(directives, revision, root, logger), nil
}

func splitLine(arg string) (path string, line int) {
	if i := strings.LastIndex(arg, ":"); i > 0 {
		if n, err := strconv.Atoi(arg[i+1:]); err == nil && n > 0 {
			return arg[:i], n
		}
	}
	return arg, 0
}
