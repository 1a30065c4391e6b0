package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func runTransfer(t *testing.T, e *Engine, req *TransferRequest) *TransferResult {
	t.Helper()
	plan, err := e.PlanTransfer(req)
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	result, err := e.ExecuteTransfer(context.Background(), plan, false)
	if err != nil {
		t.Fatalf("ExecuteTransfer() error = %v", err)
	}
	return result
}

func TestTransfer_RenamesFile(t *testing.T) {
	e, root := newTestEngine(t)
	foo := filepath.Join(root, "foo")
	bar := filepath.Join(root, "bar")
	writeFile(t, foo, "foo")

	result := runTransfer(t, e, &TransferRequest{Mode: TransferMove, Sources: []string{foo}, Destination: bar})

	if len(result.Events) != 1 {
		t.Fatalf("events = %v, want 1", result.Events)
	}
	ev := result.Events[0]
	if ev.Type != EventMoved || ev.Source != foo || ev.Path != bar {
		t.Errorf("event = %+v", ev)
	}
	if exists(foo) {
		t.Error("source still exists")
	}
	if got := readFile(t, bar); got != "foo" {
		t.Errorf("content = %q, want %q", got, "foo")
	}
}

func TestTransfer_CreatesMissingParents(t *testing.T) {
	e, root := newTestEngine(t)
	foo := filepath.Join(root, "foo")
	dest := filepath.Join(root, "a", "b", "bar")
	writeFile(t, foo, "foo")

	result := runTransfer(t, e, &TransferRequest{Mode: TransferMove, Sources: []string{foo}, Destination: dest})

	if got := readFile(t, dest); got != "foo" {
		t.Errorf("content = %q, want %q", got, "foo")
	}
	if result.Events[0].Ancestor != root {
		t.Errorf("Ancestor = %q, want %q", result.Events[0].Ancestor, root)
	}
}

func TestTransfer_MovesIntoDirectory(t *testing.T) {
	e, root := newTestEngine(t)
	sep := string(filepath.Separator)
	dir := filepath.Join(root, "foo")
	bar := filepath.Join(root, "bar")
	writeFile(t, filepath.Join(dir, "lorem"), "lorem")
	writeFile(t, bar, "bar")

	tests := []struct {
		name string
		req  *TransferRequest
	}{
		{name: "trailing separator", req: &TransferRequest{Sources: []string{bar}, Destination: dir + sep}},
		{name: "into option", req: &TransferRequest{Sources: []string{bar}, Destination: dir, Into: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFile(t, bar, "bar")

			result := runTransfer(t, e, tt.req)

			target := filepath.Join(dir, "bar")
			if got := readFile(t, target); got != "bar" {
				t.Errorf("content = %q, want %q", got, "bar")
			}
			if exists(bar) {
				t.Error("source still exists")
			}
			ev := result.Events[0]
			if ev.Path != target || ev.Ancestor != dir {
				t.Errorf("event = %+v, want path %q ancestor %q", ev, target, dir)
			}
			if !result.Plan.Into {
				t.Error("plan should be in move-into mode")
			}
		})
	}
}

func TestTransfer_CreatesIntoDestination(t *testing.T) {
	e, root := newTestEngine(t)
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	writeFile(t, a, "a")
	writeFile(t, b, "b")
	dest := filepath.Join(root, "new")

	plan, err := e.PlanTransfer(&TransferRequest{Sources: []string{a, b}, Destination: dest, Into: true})
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	if !plan.CreateDestination {
		t.Error("missing destination should be created")
	}
	if _, err := e.ExecuteTransfer(context.Background(), plan, false); err != nil {
		t.Fatalf("ExecuteTransfer() error = %v", err)
	}
	for _, name := range []string{"a", "b"} {
		if got := readFile(t, filepath.Join(dest, name)); got != name {
			t.Errorf("%s content = %q", name, got)
		}
	}
}

func TestTransfer_AlreadyAtDestination(t *testing.T) {
	e, root := newTestEngine(t)
	sep := string(filepath.Separator)
	foo := filepath.Join(root, "foo")
	writeFile(t, foo, "foo")

	tests := []struct {
		name     string
		req      *TransferRequest
		wantPath string
	}{
		{
			name:     "same path",
			req:      &TransferRequest{Sources: []string{foo}, Destination: foo},
			wantPath: foo,
		},
		{
			name:     "different spelling",
			req:      &TransferRequest{Sources: []string{foo}, Destination: root + sep + "." + sep + "foo"},
			wantPath: root + sep + "." + sep + "foo",
		},
		{
			name:     "already in directory",
			req:      &TransferRequest{Sources: []string{foo}, Destination: root + sep},
			wantPath: root + sep,
		},
		{
			name:     "nam same path",
			req:      &TransferRequest{Mode: TransferRename, Sources: []string{foo}, Destination: foo},
			wantPath: foo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := e.PlanTransfer(tt.req)
			if err != nil {
				t.Fatalf("PlanTransfer() error = %v", err)
			}
			if len(plan.Items) != 0 {
				t.Errorf("Items = %+v, want none", plan.Items)
			}
			if len(plan.Noops) != 1 {
				t.Fatalf("Noops = %+v, want 1", plan.Noops)
			}
			if plan.Noops[0].Source != foo || plan.Noops[0].Path != tt.wantPath {
				t.Errorf("noop = %+v, want source %q path %q", plan.Noops[0], foo, tt.wantPath)
			}
			if !exists(foo) {
				t.Error("source must be left alone")
			}
		})
	}
}

func TestTransfer_ReplacingNeedsConfirmation(t *testing.T) {
	e, root := newTestEngine(t)
	foo := filepath.Join(root, "foo")
	bar := filepath.Join(root, "bar")
	writeFile(t, filepath.Join(foo, "baz"), "baz")
	writeFile(t, filepath.Join(bar, "lorem"), "lorem")

	plan, err := e.PlanTransfer(&TransferRequest{Sources: []string{foo}, Destination: bar})
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	confirm := plan.Confirm()
	if len(confirm) != 1 || confirm[0].Path != bar {
		t.Fatalf("Confirm() = %+v, want [%s]", confirm, bar)
	}

	if _, err := e.ExecuteTransfer(context.Background(), plan, false); err != nil {
		t.Fatalf("ExecuteTransfer() error = %v", err)
	}
	if exists(filepath.Join(bar, "lorem")) {
		t.Error("replaced directory content survived")
	}
	if got := readFile(t, filepath.Join(bar, "baz")); got != "baz" {
		t.Errorf("content = %q, want %q", got, "baz")
	}
	if exists(foo) {
		t.Error("source still exists")
	}
}

func TestTransfer_Copy(t *testing.T) {
	e, root := newTestEngine(t)
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "nested", "file"), "content")
	dst := filepath.Join(root, "dst")

	result := runTransfer(t, e, &TransferRequest{Mode: TransferCopy, Sources: []string{src}, Destination: dst})

	if result.Events[0].Type != EventCopied {
		t.Errorf("event type = %v, want copied", result.Events[0].Type)
	}
	if got := readFile(t, filepath.Join(dst, "nested", "file")); got != "content" {
		t.Errorf("copied content = %q", got)
	}
	if !exists(filepath.Join(src, "nested", "file")) {
		t.Error("copy removed the source")
	}
}

func TestTransfer_NamDoesNotCreateParents(t *testing.T) {
	e, root := newTestEngine(t)
	foo := filepath.Join(root, "foo")
	writeFile(t, foo, "foo")
	dest := filepath.Join(root, "missing", "bar")

	plan, err := e.PlanTransfer(&TransferRequest{Mode: TransferRename, Sources: []string{foo}, Destination: dest})
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	_, err = e.ExecuteTransfer(context.Background(), plan, false)
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected *PathError, got %v", err)
	}
	if !exists(foo) {
		t.Error("failed rename must leave the source in place")
	}
}

func TestTransfer_NamEvent(t *testing.T) {
	e, root := newTestEngine(t)
	foo := filepath.Join(root, "foo")
	bar := filepath.Join(root, "bar")
	writeFile(t, foo, "foo")

	result := runTransfer(t, e, &TransferRequest{Mode: TransferRename, Sources: []string{foo}, Destination: bar})

	ev := result.Events[0]
	if ev.Type != EventRenamed || ev.Source != foo || ev.Path != bar || ev.Ancestor != "" {
		t.Errorf("event = %+v", ev)
	}
}

func TestTransfer_DryRun(t *testing.T) {
	e, root := newTestEngine(t)
	foo := filepath.Join(root, "foo")
	bar := filepath.Join(root, "bar")
	writeFile(t, foo, "foo")

	plan, err := e.PlanTransfer(&TransferRequest{Sources: []string{foo}, Destination: bar})
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	result, err := e.ExecuteTransfer(context.Background(), plan, true)
	if err != nil {
		t.Fatalf("ExecuteTransfer() error = %v", err)
	}
	if len(result.Events) != 1 {
		t.Errorf("events = %v, want 1", result.Events)
	}
	if !exists(foo) || exists(bar) {
		t.Error("dry run moved the file")
	}
}

func TestTransfer_ValidationErrors(t *testing.T) {
	e, root := newTestEngine(t)
	sep := string(filepath.Separator)
	foo := filepath.Join(root, "foo")
	bar := filepath.Join(root, "bar")
	dir := filepath.Join(root, "dir")
	writeFile(t, foo, "foo")
	writeFile(t, bar, "bar")
	writeFile(t, filepath.Join(dir, "child", "file"), "x")
	writeFile(t, filepath.Join(root, "other", "foo"), "other")

	tests := []struct {
		name    string
		req     *TransferRequest
		wantMsg string
	}{
		{
			name:    "into and to together",
			req:     &TransferRequest{Sources: []string{foo}, Destination: bar, Into: true, To: true},
			wantMsg: "The --into and --to options cannot be used together.",
		},
		{
			name:    "no sources",
			req:     &TransferRequest{Destination: bar},
			wantMsg: "At least one SOURCE_PATH is required.",
		},
		{
			name:    "several sources without trailing separator",
			req:     &TransferRequest{Sources: []string{foo, bar}, Destination: filepath.Join(root, "x")},
			wantMsg: "Expected 1 SOURCE_PATH argument because DESTINATION_PATH did not end with a " + sep + ", but got 2",
		},
		{
			name:    "several sources with to option",
			req:     &TransferRequest{Sources: []string{foo, bar}, Destination: filepath.Join(root, "x") + sep, To: true},
			wantMsg: "Expected 1 SOURCE_PATH argument because the --to option was used, but got 2",
		},
		{
			name: "duplicate base names",
			req: &TransferRequest{
				Sources:     []string{foo, filepath.Join(root, "other", "foo")},
				Destination: filepath.Join(root, "x") + sep,
			},
		},
		{
			name: "directory into itself",
			req:  &TransferRequest{Sources: []string{dir}, Destination: filepath.Join(dir, "child", "moved")},
		},
		{
			name: "copy directory into itself",
			req:  &TransferRequest{Mode: TransferCopy, Sources: []string{dir}, Destination: filepath.Join(dir, "child") + sep},
		},
		{
			name: "replace own ancestor",
			req:  &TransferRequest{Sources: []string{filepath.Join(dir, "child", "file")}, Destination: dir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.PlanTransfer(tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestTransfer_MissingSource(t *testing.T) {
	e, root := newTestEngine(t)
	missing := filepath.Join(root, "missing")

	_, err := e.PlanTransfer(&TransferRequest{Sources: []string{missing}, Destination: filepath.Join(root, "bar")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var pathErr *PathError
	if !errors.As(err, &pathErr) || pathErr.Path != missing {
		t.Fatalf("expected *PathError for %q, got %v", missing, err)
	}
}

func TestTransfer_IntoNonDirectory(t *testing.T) {
	e, root := newTestEngine(t)
	sep := string(filepath.Separator)
	foo := filepath.Join(root, "foo")
	file := filepath.Join(root, "file")
	writeFile(t, foo, "foo")
	writeFile(t, file, "file")

	_, err := e.PlanTransfer(&TransferRequest{Sources: []string{foo}, Destination: file + sep})
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected *PathError, got %v", err)
	}
	if pathErr.Path != file+sep {
		t.Errorf("Path = %q, want %q", pathErr.Path, file+sep)
	}
}
