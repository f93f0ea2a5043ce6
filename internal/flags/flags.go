// Package flags parses srcpages command-line options.
package flags

import (
	"bytes"
	"flag"
)

// Args contains all command-line options for srcpages
type Args struct {
	Annotate   bool
	ConfigPath string
	Edit       bool
	Links      LinkDirectives
	Paths      []string
	Revision   string
}

// Parse parses the given command line arguments into Args values and returns any output to send to the user
func Parse(osArgs ...string) (Args, string, error) {
	var args Args
	commandLine := flag.NewFlagSet("srcpages", flag.ContinueOnError)
	commandLine.Var(&args.Links, "link", `Source link directive. May be repeated; the first matching directive wins. For example, "github://org/repo/main" or "docs=gitlab://org/docs/main".`)
	commandLine.StringVar(&args.Revision, "revision", "", "Default revision for directives that do not set one. Defaults to the current git HEAD commit.")
	commandLine.StringVar(&args.ConfigPath, "config", "", "Path to a YAML config file with 'links' and 'revision' keys. Directives passed with -link are appended after the config file's.")
	commandLine.BoolVar(&args.Edit, "edit", false, "Generate links to the forge's file editor instead of the file view")
	commandLine.BoolVar(&args.Annotate, "annotate", false, "Treat arguments as HTML files and rewrite their data-source-path anchors in place")
	var output bytes.Buffer
	commandLine.SetOutput(&output)
	err := commandLine.Parse(osArgs) // prints usage if fails
	args.Paths = commandLine.Args()
	return args, output.String(), err
}

// Directives merges the config file's directives and default revision with
// the command-line ones. Command-line directives are appended after the
// config file's and -revision overrides the file's revision.
func (a Args) Directives() ([]string, string, error) {
	config, err := readConfig(a.ConfigPath)
	if err != nil {
		return nil, "", err
	}
	directives := append(config.Links, a.Links...)
	revision := a.Revision
	if revision == "" {
		revision = config.Revision
	}
	return directives, revision, nil
}
