package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/humanutils/internal/config"
	"github.com/danieljhkim/humanutils/internal/engine"
	"github.com/danieljhkim/humanutils/internal/planner"
)

// Style holds the colors of one run. Every color is switched on or off
// explicitly, so the package-wide color.NoColor setting is never consulted.
type Style struct {
	Enabled bool

	// New colors created and modified paths and their tags
	New *color.Color

	// Deleted colors deleted entries and moved-away sources
	Deleted *color.Color

	// Notice colors "already exists" messages
	Notice *color.Color

	// Group and Section color the titles of help output
	Group   *color.Color
	Section *color.Color
}

// NewStyle creates a Style with color turned on or off.
func NewStyle(enabled bool) Style {
	s := Style{
		Enabled: enabled,
		New:     color.New(color.FgHiGreen),
		Deleted: color.New(color.FgHiRed),
		Notice:  color.New(color.FgHiGreen),
		Group:   color.New(color.FgCyan, color.Bold),
		Section: color.New(color.FgBlue, color.Bold),
	}
	for _, c := range []*color.Color{s.New, s.Deleted, s.Notice, s.Group, s.Section} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// ResolveColor decides whether output is colored. Flags win over the
// settings file; in auto mode NO_COLOR and CLICOLOR_FORCE are honored before
// falling back to terminal detection.
func ResolveColor(mode config.ColorMode, opts *StandardOptions, isTerminal bool) bool {
	switch {
	case opts != nil && opts.Color:
		return true
	case opts != nil && opts.NoColor:
		return false
	case mode == config.ColorAlways:
		return true
	case mode == config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	return isTerminal
}

// pathString quotes paths containing spaces.
func pathString(path string) string {
	if strings.Contains(path, " ") {
		return `"` + path + `"`
	}
	return path
}

// dirPath appends a trailing separator to directory paths.
func dirPath(path string) string {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return path
	}
	return path + string(filepath.Separator)
}

// displayPath renders an entry: directories get a trailing separator.
func displayPath(path string, kind planner.Kind) string {
	if kind == planner.KindDirectory {
		return dirPath(path)
	}
	return path
}

// colorNew colors the part of path below ancestor, leaving the part that
// already existed uncolored. Paths with spaces are wrapped in colored quotes.
func (s Style) colorNew(path, ancestor string, c *color.Color) string {
	out := c.Sprint(path)
	if s.Enabled && ancestor != "" {
		prefix := dirPath(strings.TrimRight(ancestor, string(filepath.Separator)))
		if rest, ok := strings.CutPrefix(path, prefix); ok && rest != "" {
			out = prefix + c.Sprint(rest)
		}
	}
	if strings.Contains(path, " ") {
		quote := c.Sprint(`"`)
		out = quote + out + quote
	}
	return out
}

// Printer writes tool output. Success lines are dropped when silent;
// notices and errors are always written.
type Printer struct {
	out    io.Writer
	err    io.Writer
	style  Style
	silent bool
}

// NewPrinter creates a Printer.
func NewPrinter(out, err io.Writer, style Style, silent bool) *Printer {
	return &Printer{out: out, err: err, style: style, silent: silent}
}

// Success prints a line unless the printer is silent.
func (p *Printer) Success(line string) {
	if p.silent {
		return
	}
	_, _ = fmt.Fprintln(p.out, line)
}

// Notice prints an informational line, even when silent.
func (p *Printer) Notice(line string) {
	_, _ = fmt.Fprintln(p.out, line)
}

// Prompt prints text without a trailing newline.
func (p *Printer) Prompt(text string) {
	_, _ = fmt.Fprint(p.out, text)
}

// Line prints a plain line to stdout.
func (p *Printer) Line(line string) {
	_, _ = fmt.Fprintln(p.out, line)
}

// Error prints a line to stderr.
func (p *Printer) Error(line string) {
	_, _ = fmt.Fprintln(p.err, line)
}

// Events prints the output line of each event.
func (p *Printer) Events(events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EventExists, engine.EventAlreadyAt:
			p.Notice(p.FormatEvent(ev))
		default:
			p.Success(p.FormatEvent(ev))
		}
	}
}

// FormatRemoval renders a del line: the whole line in one color. The event
// path already carries the trailing separator of directories.
func (p *Printer) FormatRemoval(ev engine.Event) string {
	return p.style.Deleted.Sprint("D " + pathString(ev.Path))
}

// FormatEvent renders a single event.
func (p *Printer) FormatEvent(ev engine.Event) string {
	s := p.style
	switch ev.Type {
	case engine.EventCreated:
		return s.New.Sprint("N") + " " + s.colorNew(displayPath(ev.Path, ev.Kind), ev.Ancestor, s.New)
	case engine.EventModified:
		return s.New.Sprint("M") + " " + s.colorNew(displayPath(ev.Path, ev.Kind), ev.Ancestor, s.New)
	case engine.EventDeleted:
		return s.Deleted.Sprint("D") + " " + s.Deleted.Sprint(pathString(displayPath(ev.Path, ev.Kind)))
	case engine.EventMoved, engine.EventCopied:
		tag := "M"
		if ev.Type == engine.EventCopied {
			tag = "C"
		}
		return fmt.Sprintf("%s %s -> %s",
			s.New.Sprint(tag),
			s.Deleted.Sprint(pathString(ev.Source)),
			s.colorNew(ev.Path, ev.Ancestor, s.New))
	case engine.EventRenamed:
		return fmt.Sprintf("\"%s\" -> \"%s\"", ev.Source, ev.Path)
	case engine.EventExists:
		if ev.Kind == planner.KindDirectory {
			return s.Notice.Sprintf("Directory \"%s\" already exists", dirPath(ev.Path))
		}
		return s.Notice.Sprintf("Empty file \"%s\" already exists", ev.Path)
	case engine.EventAlreadyAt:
		return fmt.Sprintf("\"%s\" is already located at \"%s\"", ev.Source, ev.Path)
	default:
		return ev.Path
	}
}
