package cli

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/danieljhkim/humanutils/internal/config"
	"github.com/danieljhkim/humanutils/internal/engine"
	"github.com/danieljhkim/humanutils/internal/planner"
)

func TestReadConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"\r\n", true},
		{"y\n", true},
		{"Y\n", true},
		{"yes please\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"maybe\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			in := bufio.NewReader(strings.NewReader(tt.input))
			if got := readConfirmation(in); got != tt.want {
				t.Errorf("readConfirmation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOverwritePrompt(t *testing.T) {
	single := []planner.ConflictRecord{{Path: "a", Kind: planner.KindDirectory}}
	if got, want := overwritePrompt(single), `Overwrite directory "a"? [Y/n]`; got != want {
		t.Errorf("overwritePrompt() = %q, want %q", got, want)
	}

	several := []planner.ConflictRecord{
		{Path: "a b", Kind: planner.KindFile},
		{Path: "c", Kind: planner.KindDirectory},
	}
	want := "For the following...\n\"a b\"\nc/\n...overwrite all? [Y/n]"
	if got := overwritePrompt(several); got != want {
		t.Errorf("overwritePrompt() = %q, want %q", got, want)
	}
}

func TestKindWord(t *testing.T) {
	tests := []struct {
		kind planner.Kind
		want string
	}{
		{planner.KindFile, "file"},
		{planner.KindDirectory, "directory"},
		{planner.KindSymlink, "symlink"},
	}
	for _, tt := range tests {
		if got := kindWord(planner.ConflictRecord{Kind: tt.kind}); got != tt.want {
			t.Errorf("kindWord(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}

	got := overwritePrompt([]planner.ConflictRecord{{Path: "dangling", Kind: planner.KindSymlink}})
	if want := `Overwrite symlink "dangling"? [Y/n]`; got != want {
		t.Errorf("overwritePrompt() = %q, want %q", got, want)
	}
}

func TestReplacePrompt(t *testing.T) {
	got := replacePrompt(planner.ConflictRecord{Kind: planner.KindSymlink}, "bar")
	if want := `File "bar" already exists, replace it? [Y/n]`; got != want {
		t.Errorf("replacePrompt() = %q, want %q", got, want)
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name     string
		mode     config.ColorMode
		opts     *StandardOptions
		terminal bool
		env      map[string]string
		want     bool
	}{
		{name: "flag wins over never", mode: config.ColorNever, opts: &StandardOptions{Color: true}, want: true},
		{name: "no-color flag wins over always", mode: config.ColorAlways, opts: &StandardOptions{NoColor: true}, terminal: true, want: false},
		{name: "always", mode: config.ColorAlways, opts: &StandardOptions{}, want: true},
		{name: "never", mode: config.ColorNever, opts: &StandardOptions{}, terminal: true, want: false},
		{name: "auto on terminal", mode: config.ColorAuto, opts: &StandardOptions{}, terminal: true, want: true},
		{name: "auto off terminal", mode: config.ColorAuto, opts: &StandardOptions{}, want: false},
		{name: "NO_COLOR", mode: config.ColorAuto, terminal: true, env: map[string]string{"NO_COLOR": ""}, want: false},
		{name: "CLICOLOR_FORCE", mode: config.ColorAuto, env: map[string]string{"CLICOLOR_FORCE": "1"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, "NO_COLOR")
			unsetEnv(t, "CLICOLOR_FORCE")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := ResolveColor(tt.mode, tt.opts, tt.terminal); got != tt.want {
				t.Errorf("ResolveColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	p := NewPrinter(nil, nil, NewStyle(false), false)

	tests := []struct {
		name  string
		event engine.Event
		want  string
	}{
		{"created directory", engine.Event{Type: engine.EventCreated, Path: "a", Kind: planner.KindDirectory}, "N a/"},
		{"created file with space", engine.Event{Type: engine.EventCreated, Path: "a b"}, `N "a b"`},
		{"modified", engine.Event{Type: engine.EventModified, Path: "a"}, "M a"},
		{"deleted directory", engine.Event{Type: engine.EventDeleted, Path: "a", Kind: planner.KindDirectory}, "D a/"},
		{"moved", engine.Event{Type: engine.EventMoved, Source: "a", Path: "b"}, "M a -> b"},
		{"copied", engine.Event{Type: engine.EventCopied, Source: "a", Path: "d/a"}, "C a -> d/a"},
		{"renamed", engine.Event{Type: engine.EventRenamed, Source: "foo", Path: "bar"}, `"foo" -> "bar"`},
		{"directory exists", engine.Event{Type: engine.EventExists, Path: "a", Kind: planner.KindDirectory}, `Directory "a/" already exists`},
		{"file exists", engine.Event{Type: engine.EventExists, Path: "a"}, `Empty file "a" already exists`},
		{"already at", engine.Event{Type: engine.EventAlreadyAt, Source: "foo", Path: "./foo"}, `"foo" is already located at "./foo"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.FormatEvent(tt.event); got != tt.want {
				t.Errorf("FormatEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorNew(t *testing.T) {
	s := NewStyle(true)
	green := func(text string) string { return s.New.Sprint(text) }

	tests := []struct {
		name     string
		path     string
		ancestor string
		want     string
	}{
		{"no ancestor", "a/b", "", green("a/b")},
		{"existing prefix uncolored", "a/b/c", "a", "a/" + green("b/c")},
		{"ancestor with separator", "a/b", "a/", "a/" + green("b")},
		{"quoted", "a/b c", "a", green(`"`) + "a/" + green("b c") + green(`"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.colorNew(tt.path, tt.ancestor, s.New); got != tt.want {
				t.Errorf("colorNew() = %q, want %q", got, tt.want)
			}
		})
	}

	plain := NewStyle(false)
	if got := plain.colorNew("a/b c", "a", plain.New); got != `"a/b c"` {
		t.Errorf("colorNew() without color = %q", got)
	}
}

func TestPrinter_Silent(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, NewStyle(false), true)

	p.Events([]engine.Event{
		{Type: engine.EventCreated, Path: "a"},
		{Type: engine.EventExists, Path: "b"},
	})
	p.Error("boom")

	if got, want := out.String(), "Empty file \"b\" already exists\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if got := errOut.String(); got != "boom\n" {
		t.Errorf("stderr = %q, want %q", got, "boom\n")
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"declined", engine.ErrDeclined, ""},
		{"reported", errReported, ""},
		{"argument", planner.NewArgumentError("bad"), "Error: bad\n"},
		{"path", &engine.PathError{Op: "stat", Path: "x", Err: errString("gone")}, "Error for \"x\": gone\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			if got := buf.String(); got != tt.want {
				t.Errorf("reportError() = %q, want %q", got, tt.want)
			}
		})
	}
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
