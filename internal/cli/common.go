package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/humanutils/internal/config"
	"github.com/danieljhkim/humanutils/internal/engine"
	"github.com/danieljhkim/humanutils/internal/fsops"
	"github.com/danieljhkim/humanutils/internal/logging"
)

// session bundles what a tool needs for one run.
type session struct {
	ctx     context.Context
	opts    *StandardOptions
	eng     *engine.Engine
	printer *Printer
	in      *bufio.Reader
}

// newSession loads the settings and creates an engine with real
// implementations of all dependencies.
func newSession(cmd *cobra.Command, tool string, streams *Streams, opts *StandardOptions) (*session, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	settings, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(&logging.Options{
		Level:  settings.LogLevel,
		Output: streams.Err,
		JSON:   settings.LogFormat == config.LogFormatJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger = logging.WithTool(logger, tool)

	style := NewStyle(ResolveColor(settings.Color, opts, streams.IsTerminal))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &session{
		ctx:     ctx,
		opts:    opts,
		eng:     engine.New(fsops.NewRealFS(), logger),
		printer: NewPrinter(streams.Out, streams.Err, style, opts.Silent || settings.Silent),
		in:      bufio.NewReader(streams.In),
	}, nil
}

// confirm shows prompt and returns ErrDeclined unless the user agrees.
// With --force nothing is asked.
func (s *session) confirm(prompt string) error {
	if s.opts.Force {
		return nil
	}
	s.printer.Prompt(prompt)
	if !readConfirmation(s.in) {
		return engine.ErrDeclined
	}
	return nil
}
