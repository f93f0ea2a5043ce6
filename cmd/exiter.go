package cmd

import (
	"os"
	"testing"

	"github.com/pkg/errors"
)

var exiter = os.Exit

// Exit stops the process with the given code, unless a test exiter is installed.
func Exit(code int) {
	exiter(code)
}

// SetupTestExiter replaces the process exiter with a panic for the duration of a test.
func SetupTestExiter(t *testing.T) {
	// require testing.T to ensure this is a test and not real code
	t.Log("Setting up exiter")
	exiter = func(code int) {
		panic(errors.Errorf("Attempted to exit with exit code %d", code))
	}
}
