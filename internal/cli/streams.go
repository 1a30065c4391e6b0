package cli

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Streams holds the standard streams of a run.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// IsTerminal reports whether Out is a terminal; it drives automatic color
	IsTerminal bool
}

// DefaultStreams returns the process streams. Output goes through
// go-colorable so ANSI colors also work on Windows consoles.
func DefaultStreams() *Streams {
	fd := os.Stdout.Fd()
	return &Streams{
		In:         os.Stdin,
		Out:        colorable.NewColorableStdout(),
		Err:        colorable.NewColorableStderr(),
		IsTerminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}
