package commands

import (
	"io"
	"os"
)

// IOTuple bundles the reader and writer a command uses for interactive
// prompts and output, so tests can substitute buffers for the terminal.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns the IOTuple commands use outside of tests: stdin and
// stdout.
func DefaultIO() IOTuple {
	return IOTuple{Reader: os.Stdin, Writer: os.Stdout}
}
