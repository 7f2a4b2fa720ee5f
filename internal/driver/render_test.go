package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"dartforge/flow"
	"dartforge/internal/corpus"
	"dartforge/internal/driver"
	"dartforge/internal/pipeline"
	"dartforge/internal/project"
)

// eventLog is a ProgressSink safe for concurrent workers.
type eventLog struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (l *eventLog) OnEvent(evt pipeline.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
}

func (l *eventLog) byEntry(name string) []pipeline.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []pipeline.Event
	for _, evt := range l.events {
		if evt.Entry == name {
			out = append(out, evt)
		}
	}
	return out
}

func planAll(t *testing.T, root string) []driver.Task {
	t.Helper()
	tasks, err := driver.Plan(project.Defaults(root))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	return tasks
}

func TestPlanSelectsEveryEntryInOrder(t *testing.T) {
	root := t.TempDir()
	tasks := planAll(t, root)
	names := corpus.Names()
	if len(tasks) != len(names) {
		t.Fatalf("planned %d tasks, want %d", len(tasks), len(names))
	}
	outDir := filepath.Join(root, "gen", "dart")
	for i, task := range tasks {
		if task.Entry.Name != names[i] {
			t.Fatalf("task %d is %q, want %q", i, task.Entry.Name, names[i])
		}
		if !filepath.IsAbs(task.OutPath) || filepath.Dir(task.OutPath) == task.OutPath {
			t.Fatalf("task %d has bad out path %q", i, task.OutPath)
		}
		rel, err := filepath.Rel(outDir, task.OutPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			t.Fatalf("task %d writes outside out dir: %q", i, task.OutPath)
		}
	}
}

func TestPlanFilter(t *testing.T) {
	m := project.Defaults(t.TempDir())
	m.Config.Render.Entries = []string{"loops/while", "loops/while", "branches/if"}
	tasks, err := driver.Plan(m)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("planned %d tasks, want 2 after dedup", len(tasks))
	}
	if tasks[0].Entry.Name != "loops/while" || tasks[1].Entry.Name != "branches/if" {
		t.Fatalf("filter order not preserved: %q, %q", tasks[0].Entry.Name, tasks[1].Entry.Name)
	}
}

func TestPlanUnknownEntry(t *testing.T) {
	m := project.Defaults(t.TempDir())
	m.Config.Render.Entries = []string{"loops/quantum"}
	if _, err := driver.Plan(m); err == nil {
		t.Fatal("expected error for unknown entry")
	}
}

func TestRenderAllWritesOutputs(t *testing.T) {
	root := t.TempDir()
	tasks := planAll(t, root)

	results, timings, err := driver.RenderAll(context.Background(), tasks, driver.Options{})
	if err != nil {
		t.Fatalf("render all: %v", err)
	}
	if len(results) != len(tasks) {
		t.Fatalf("%d results for %d tasks", len(results), len(tasks))
	}
	if !timings.Has(pipeline.StageRender) || !timings.Has(pipeline.StageWrite) {
		t.Fatal("stage timings not recorded")
	}
	for i, res := range results {
		if res.Entry != tasks[i].Entry.Name {
			t.Fatalf("result %d is %q, want %q (order must match tasks)", i, res.Entry, tasks[i].Entry.Name)
		}
		if res.Err != nil {
			t.Fatalf("entry %s failed: %v", res.Entry, res.Err)
		}
		data, err := os.ReadFile(res.Path)
		if err != nil {
			t.Fatalf("entry %s output missing: %v", res.Entry, err)
		}
		if string(data) != res.Text {
			t.Fatalf("entry %s file content differs from rendered text", res.Entry)
		}
		code, err := tasks[i].Entry.Build()
		if err != nil {
			t.Fatalf("rebuild %s: %v", res.Entry, err)
		}
		want, err := flow.Fingerprint(code)
		if err != nil {
			t.Fatalf("fingerprint %s: %v", res.Entry, err)
		}
		if res.Digest != want {
			t.Fatalf("entry %s digest differs from flow.Fingerprint", res.Entry)
		}
	}
}

func TestRenderAllCacheMarksSecondRun(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenRenderCache("dartforge-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	root := t.TempDir()
	tasks := planAll(t, root)
	opts := driver.Options{Cache: cache, Jobs: 2}

	first, _, err := driver.RenderAll(context.Background(), tasks, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	for _, res := range first {
		if res.Cached {
			t.Fatalf("entry %s cached on a cold run", res.Entry)
		}
	}

	second, _, err := driver.RenderAll(context.Background(), tasks, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for _, res := range second {
		if res.Err != nil {
			t.Fatalf("entry %s failed: %v", res.Entry, res.Err)
		}
		if !res.Cached {
			t.Fatalf("entry %s not cached on a warm run", res.Entry)
		}
	}
}

func TestRenderAllCacheRewritesMissingFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenRenderCache("dartforge-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	root := t.TempDir()
	m := project.Defaults(root)
	m.Config.Render.Entries = []string{"loops/while"}
	tasks, err := driver.Plan(m)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	opts := driver.Options{Cache: cache}

	if _, _, err := driver.RenderAll(context.Background(), tasks, opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := os.Remove(tasks[0].OutPath); err != nil {
		t.Fatalf("remove output: %v", err)
	}

	results, _, err := driver.RenderAll(context.Background(), tasks, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if results[0].Cached {
		t.Fatal("deleted output reported as cached")
	}
	if _, err := os.Stat(tasks[0].OutPath); err != nil {
		t.Fatalf("output not rewritten: %v", err)
	}
}

func TestRenderAllCheckMode(t *testing.T) {
	root := t.TempDir()
	m := project.Defaults(root)
	m.Config.Render.Entries = []string{"loops/while", "branches/if"}
	tasks, err := driver.Plan(m)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	// Nothing on disk yet: everything drifts.
	results, _, err := driver.RenderAll(context.Background(), tasks, driver.Options{Check: true})
	if err != nil {
		t.Fatalf("check run: %v", err)
	}
	for _, res := range results {
		if !res.Drifted {
			t.Fatalf("entry %s not drifted with no outputs", res.Entry)
		}
	}

	// Render, then check: clean.
	if _, _, err := driver.RenderAll(context.Background(), tasks, driver.Options{}); err != nil {
		t.Fatalf("write run: %v", err)
	}
	results, _, err = driver.RenderAll(context.Background(), tasks, driver.Options{Check: true})
	if err != nil {
		t.Fatalf("check run: %v", err)
	}
	for _, res := range results {
		if res.Drifted {
			t.Fatalf("entry %s drifted right after render", res.Entry)
		}
	}

	// Corrupt one output: only that entry drifts.
	if err := os.WriteFile(tasks[0].OutPath, []byte("edited by hand"), 0o600); err != nil {
		t.Fatalf("edit output: %v", err)
	}
	results, _, err = driver.RenderAll(context.Background(), tasks, driver.Options{Check: true})
	if err != nil {
		t.Fatalf("check run: %v", err)
	}
	if !results[0].Drifted {
		t.Fatal("edited output not reported as drift")
	}
	if results[1].Drifted {
		t.Fatal("untouched output reported as drift")
	}
}

func TestRenderAllEmitsEvents(t *testing.T) {
	root := t.TempDir()
	m := project.Defaults(root)
	m.Config.Render.Entries = []string{"loops/do-while"}
	tasks, err := driver.Plan(m)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	log := &eventLog{}
	if _, _, err := driver.RenderAll(context.Background(), tasks, driver.Options{Progress: log}); err != nil {
		t.Fatalf("render all: %v", err)
	}
	events := log.byEntry("loops/do-while")
	want := []struct {
		stage  pipeline.Stage
		status pipeline.Status
	}{
		{pipeline.StageRender, pipeline.StatusWorking},
		{pipeline.StageRender, pipeline.StatusDone},
		{pipeline.StageWrite, pipeline.StatusWorking},
		{pipeline.StageWrite, pipeline.StatusDone},
	}
	if len(events) != len(want) {
		t.Fatalf("%d events, want %d: %+v", len(events), len(want), events)
	}
	for i, evt := range events {
		if evt.Stage != want[i].stage || evt.Status != want[i].status {
			t.Fatalf("event %d is %s/%s, want %s/%s", i, evt.Stage, evt.Status, want[i].stage, want[i].status)
		}
	}
}

func TestRenderAllBrokenEntry(t *testing.T) {
	boom := errors.New("boom")
	tasks := []driver.Task{
		{
			Entry: corpus.Entry{
				Name:  "broken/build",
				File:  "broken/build.dart",
				Build: func() (flow.Code, error) { return nil, boom },
			},
			OutPath: filepath.Join(t.TempDir(), "broken", "build.dart"),
		},
		{
			Entry: corpus.Entry{
				Name:  "broken/render",
				File:  "broken/render.dart",
				Build: func() (flow.Code, error) { return &flow.Condition{}, nil },
			},
			OutPath: filepath.Join(t.TempDir(), "broken", "render.dart"),
		},
	}
	log := &eventLog{}
	results, _, err := driver.RenderAll(context.Background(), tasks, driver.Options{Progress: log})
	if err != nil {
		t.Fatalf("render all: %v", err)
	}
	if !errors.Is(results[0].Err, boom) {
		t.Fatalf("build failure not wrapped: %v", results[0].Err)
	}
	var icErr *flow.InvalidConstructError
	if !errors.As(results[1].Err, &icErr) {
		t.Fatalf("render failure not surfaced: %v", results[1].Err)
	}
	for _, name := range []string{"broken/build", "broken/render"} {
		events := log.byEntry(name)
		last := events[len(events)-1]
		if last.Status != pipeline.StatusError || last.Err == nil {
			t.Fatalf("entry %s last event %+v, want render error", name, last)
		}
	}
	for _, res := range results {
		if _, err := os.Stat(res.Path); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("failed entry %s left an output file", res.Entry)
		}
	}
}

func TestRenderAllCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tasks := planAll(t, t.TempDir())
	_, _, err := driver.RenderAll(ctx, tasks, driver.Options{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled run returned %v", err)
	}
}

func TestRenderAllNoTasks(t *testing.T) {
	results, timings, err := driver.RenderAll(context.Background(), nil, driver.Options{})
	if err != nil {
		t.Fatalf("empty run: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("empty run produced %d results", len(results))
	}
	if timings.Has(pipeline.StageRender) {
		t.Fatal("empty run recorded timings")
	}
}
