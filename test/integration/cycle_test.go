package integration

import (
	"context"
	"testing"

	"github.com/danieljhkim/humanutils/internal/engine"
	"github.com/danieljhkim/humanutils/internal/planner"
)

func TestNewMovDel_FullCycle(t *testing.T) {
	eng, fsys := setupTestEngine(t)
	ctx := context.Background()

	// Create a nested file with content and an empty directory
	newReq := &engine.NewRequest{
		Paths:      []string{"/work/src/notes.txt", "/work/empty/"},
		Content:    engine.JoinContent([]string{"hello"}),
		HasContent: true,
	}
	plan, err := eng.PlanNew(newReq)
	if err != nil {
		t.Fatalf("PlanNew() error = %v", err)
	}
	if plan.NeedsConfirmation() {
		t.Error("nothing exists yet, no confirmation expected")
	}
	if _, err := eng.ExecuteNew(ctx, plan, newReq, false); err != nil {
		t.Fatalf("ExecuteNew() error = %v", err)
	}
	if got := string(fsys.files["/work/src/notes.txt"]); got != "hello\n" {
		t.Errorf("notes.txt = %q, want %q", got, "hello\n")
	}
	if !fsys.dirs["/work/empty"] {
		t.Error("expected /work/empty to be created")
	}

	// Move both into a directory that does not exist yet
	movReq := &engine.TransferRequest{
		Mode:        engine.TransferMove,
		Sources:     []string{"/work/src", "/work/empty"},
		Destination: "/work/dest/",
	}
	movPlan, err := eng.PlanTransfer(movReq)
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	if !movPlan.Into || !movPlan.CreateDestination {
		t.Errorf("Into = %v, CreateDestination = %v, want both true", movPlan.Into, movPlan.CreateDestination)
	}
	movResult, err := eng.ExecuteTransfer(ctx, movPlan, false)
	if err != nil {
		t.Fatalf("ExecuteTransfer() error = %v", err)
	}
	if len(movResult.Events) != 2 {
		t.Fatalf("expected 2 move events, got %d", len(movResult.Events))
	}
	for _, ev := range movResult.Events {
		if ev.Ancestor != "/work" {
			t.Errorf("event %s ancestor = %q, want /work", ev.Path, ev.Ancestor)
		}
	}
	if got := string(fsys.files["/work/dest/src/notes.txt"]); got != "hello\n" {
		t.Errorf("moved notes.txt = %q, want %q", got, "hello\n")
	}
	if fsys.dirs["/work/src"] {
		t.Error("/work/src should be gone after the move")
	}

	// Moving again is a no-op
	againPlan, err := eng.PlanTransfer(&engine.TransferRequest{
		Mode:        engine.TransferMove,
		Sources:     []string{"/work/dest/src"},
		Destination: "/work/dest/",
	})
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	if len(againPlan.Items) != 0 || len(againPlan.Noops) != 1 {
		t.Errorf("expected a single no-op, got %d items and %d no-ops", len(againPlan.Items), len(againPlan.Noops))
	}

	// Delete the destination with everything in it
	delPlan, err := eng.PlanDelete(&engine.DeleteRequest{Paths: []string{"/work/dest"}})
	if err != nil {
		t.Fatalf("PlanDelete() error = %v", err)
	}
	delResult, err := eng.ExecuteDelete(ctx, delPlan, false)
	if err != nil {
		t.Fatalf("ExecuteDelete() error = %v", err)
	}
	if len(delResult.Events) != 1 || delResult.Events[0].Path != "/work/dest/" {
		t.Errorf("unexpected delete events: %+v", delResult.Events)
	}
	if len(fsys.below("/work")) != 0 {
		t.Errorf("expected /work to be empty, got %v", fsys.below("/work"))
	}
}

func TestNew_ReplacesFileWithDirectory(t *testing.T) {
	eng, fsys := setupTestEngine(t)
	fsys.files["/work/x"] = []byte("data")

	req := &engine.NewRequest{Paths: []string{"/work/x/y"}}
	plan, err := eng.PlanNew(req)
	if err != nil {
		t.Fatalf("PlanNew() error = %v", err)
	}
	if !plan.NeedsConfirmation() || plan.Confirm[0].Path != "/work/x" {
		t.Fatalf("expected /work/x to need confirmation, got %+v", plan.Confirm)
	}

	result, err := eng.ExecuteNew(context.Background(), plan, req, false)
	if err != nil {
		t.Fatalf("ExecuteNew() error = %v", err)
	}

	wantTypes := []engine.EventType{engine.EventDeleted, engine.EventCreated}
	if len(result.Events) != len(wantTypes) {
		t.Fatalf("expected %d events, got %+v", len(wantTypes), result.Events)
	}
	for i, want := range wantTypes {
		if result.Events[i].Type != want {
			t.Errorf("event %d type = %v, want %v", i, result.Events[i].Type, want)
		}
	}
	if !fsys.dirs["/work/x"] {
		t.Error("/work/x should now be a directory")
	}
	if _, ok := fsys.files["/work/x/y"]; !ok {
		t.Error("/work/x/y should exist")
	}
}

func TestCop_Directory(t *testing.T) {
	eng, fsys := setupTestEngine(t)
	fsys.dirs["/work/a"] = true
	fsys.dirs["/work/a/b"] = true
	fsys.files["/work/a/b/c"] = []byte("c")

	plan, err := eng.PlanTransfer(&engine.TransferRequest{
		Mode:        engine.TransferCopy,
		Sources:     []string{"/work/a"},
		Destination: "/work/copy",
	})
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	if _, err := eng.ExecuteTransfer(context.Background(), plan, false); err != nil {
		t.Fatalf("ExecuteTransfer() error = %v", err)
	}

	if string(fsys.files["/work/a/b/c"]) != "c" {
		t.Error("source should be untouched")
	}
	if string(fsys.files["/work/copy/b/c"]) != "c" {
		t.Error("copy should contain b/c")
	}
}

func TestNam_ReplacesExistingDirectory(t *testing.T) {
	eng, fsys := setupTestEngine(t)
	fsys.files["/work/foo"] = []byte("foo")
	fsys.dirs["/work/bar"] = true
	fsys.files["/work/bar/inner"] = []byte("inner")

	plan, err := eng.PlanTransfer(&engine.TransferRequest{
		Mode:        engine.TransferRename,
		Sources:     []string{"/work/foo"},
		Destination: "/work/bar",
	})
	if err != nil {
		t.Fatalf("PlanTransfer() error = %v", err)
	}
	confirm := plan.Confirm()
	if len(confirm) != 1 || confirm[0].Kind != planner.KindDirectory {
		t.Fatalf("expected the directory bar to need confirmation, got %+v", confirm)
	}

	if _, err := eng.ExecuteTransfer(context.Background(), plan, false); err != nil {
		t.Fatalf("ExecuteTransfer() error = %v", err)
	}
	if string(fsys.files["/work/bar"]) != "foo" {
		t.Error("bar should now hold the content of foo")
	}
	if _, ok := fsys.files["/work/bar/inner"]; ok {
		t.Error("the old content of bar should be gone")
	}
}

func TestDel_LeavesWorkingDirectory(t *testing.T) {
	eng, fsys := setupTestEngine(t)
	if err := fsys.MkdirAll("/work/d/e", 0755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Chdir("/work/d/e"); err != nil {
		t.Fatal(err)
	}

	plan, err := eng.PlanDelete(&engine.DeleteRequest{
		Paths:        []string{"/work/d"},
		Force:        true,
		TrackCwdFile: "/tmp/cwd",
	})
	if err != nil {
		t.Fatalf("PlanDelete() error = %v", err)
	}
	result, err := eng.ExecuteDelete(context.Background(), plan, false)
	if err != nil {
		t.Fatalf("ExecuteDelete() error = %v", err)
	}

	if result.NewCwd != "/work" || fsys.cwd != "/work" {
		t.Errorf("NewCwd = %q, cwd = %q, want /work", result.NewCwd, fsys.cwd)
	}
	if got := string(fsys.files["/tmp/cwd"]); got != "/work" {
		t.Errorf("tracked cwd = %q, want /work", got)
	}
	if fsys.dirs["/work/d"] {
		t.Error("/work/d should be gone")
	}
}
