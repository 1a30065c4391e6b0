package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danieljhkim/humanutils/internal/engine"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("already reported")

// reportError prints err to w in the format of the tools.
func reportError(w io.Writer, err error) {
	var pathErr *engine.PathError
	switch {
	case errors.Is(err, engine.ErrDeclined), errors.Is(err, errReported):
	case errors.Is(err, context.Canceled):
		_, _ = fmt.Fprintln(w, "Error: interrupted")
	case errors.As(err, &pathErr):
		_, _ = fmt.Fprintf(w, "Error for \"%s\": %v\n", pathErr.Path, pathErr.Err)
	default:
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	}
}
