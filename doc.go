// srcpages resolves project source file paths to browsable forge URLs, for
// hyperlinking source references from generated documentation.
//
// Installation:
//
//	go install github.com/srcpages/srcpages@latest
//
// A 'go.mod' file must be present in the current directory or a parent.
// With no -link flags, the directive and revision are derived from the
// repository's origin remote and HEAD commit.
//
//	cd ./mymodule
//	srcpages internal/server/server.go:42
//
// To show usage:
//
//	srcpages -help
package main
