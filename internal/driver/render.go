// Package driver orchestrates gallery rendering: planning tasks from the
// manifest, emitting entries in parallel, and writing outputs through the
// render cache.
package driver

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"dartforge/flow"
	"dartforge/internal/corpus"
	"dartforge/internal/pipeline"
	"dartforge/internal/project"
)

// Task pairs a gallery entry with its resolved output path.
type Task struct {
	Entry   corpus.Entry
	OutPath string
}

// Plan selects the entries the manifest asks for (all of them when the
// filter is empty), in deterministic order, with output paths resolved
// against [render].out. Duplicate filter names collapse to one task.
func Plan(m *project.Manifest) ([]Task, error) {
	outDir, err := m.OutDir()
	if err != nil {
		return nil, err
	}
	names := m.Config.Render.Entries
	if len(names) == 0 {
		names = corpus.Names()
	}
	tasks := make([]Task, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		entry, ok := corpus.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown gallery entry %q", name)
		}
		tasks = append(tasks, Task{
			Entry:   entry,
			OutPath: filepath.Join(outDir, filepath.FromSlash(entry.File)),
		})
	}
	return tasks, nil
}

// Options configures RenderAll.
type Options struct {
	Jobs     int                   // <= 0 means GOMAXPROCS
	Cache    *RenderCache          // nil disables the render cache
	Progress pipeline.ProgressSink // nil disables progress events
	Check    bool                  // compare existing outputs instead of writing
}

// Result is the outcome of one task. Err is a per-entry failure; it does
// not abort the other tasks.
type Result struct {
	Entry      string
	Path       string
	Digest     flow.Digest
	Text       string
	Cached     bool // output already on disk with matching cache record
	Drifted    bool // check mode: file missing or content differs
	Err        error
	RenderTime time.Duration
	WriteTime  time.Duration
}

// RenderAll runs the tasks with bounded parallelism. Results arrive in
// task order regardless of scheduling; the returned error is reserved for
// cancellation, per-entry failures live in the results.
func RenderAll(ctx context.Context, tasks []Task, opts Options) ([]Result, pipeline.Timings, error) {
	var timings pipeline.Timings
	if len(tasks) == 0 {
		return nil, timings, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(tasks)))

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = runTask(task, opts)
			return nil
		})
	}

	err := g.Wait()
	for _, r := range results {
		timings.Add(pipeline.StageRender, r.RenderTime)
		timings.Add(pipeline.StageWrite, r.WriteTime)
	}
	return results, timings, err
}

func runTask(task Task, opts Options) Result {
	res := Result{Entry: task.Entry.Name, Path: task.OutPath}
	emit := func(stage pipeline.Stage, status pipeline.Status, err error, elapsed time.Duration) {
		if opts.Progress == nil {
			return
		}
		opts.Progress.OnEvent(pipeline.Event{
			Entry:   task.Entry.Name,
			Stage:   stage,
			Status:  status,
			Err:     err,
			Elapsed: elapsed,
		})
	}

	emit(pipeline.StageRender, pipeline.StatusWorking, nil, 0)
	start := time.Now()
	code, err := task.Entry.Build()
	if err == nil {
		res.Text, res.Digest, err = renderDigest(code)
	}
	res.RenderTime = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("render %s: %w", task.Entry.Name, err)
		emit(pipeline.StageRender, pipeline.StatusError, res.Err, res.RenderTime)
		return res
	}
	emit(pipeline.StageRender, pipeline.StatusDone, nil, res.RenderTime)

	emit(pipeline.StageWrite, pipeline.StatusWorking, nil, 0)
	start = time.Now()
	status := pipeline.StatusDone
	if opts.Check {
		res.Drifted, err = outputDrifted(task.OutPath, res.Text)
	} else {
		res.Cached, err = writeOutput(task, &res, opts.Cache)
		if res.Cached {
			status = pipeline.StatusCached
		}
	}
	res.WriteTime = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("write %s: %w", task.Entry.Name, err)
		emit(pipeline.StageWrite, pipeline.StatusError, res.Err, res.WriteTime)
		return res
	}
	emit(pipeline.StageWrite, status, nil, res.WriteTime)
	return res
}

// teeSink feeds one emission pass into both the text buffer and the digest
// state, so rendering never runs twice per entry.
type teeSink struct {
	b *strings.Builder
	h hash.Hash
}

func (s teeSink) WriteString(str string) (int, error) {
	if _, err := s.h.Write([]byte(str)); err != nil {
		return 0, err
	}
	return s.b.WriteString(str)
}

func renderDigest(code flow.Code) (string, flow.Digest, error) {
	var b strings.Builder
	h := sha256.New()
	if err := flow.RenderTo(teeSink{b: &b, h: h}, code); err != nil {
		return "", flow.Digest{}, err
	}
	var d flow.Digest
	copy(d[:], h.Sum(nil))
	return b.String(), d, nil
}

// writeOutput writes the rendered text unless the cache proves the file is
// already current: a payload under the same digest for the same entry plus
// an on-disk file of the recorded size.
func writeOutput(task Task, res *Result, cache *RenderCache) (bool, error) {
	if cache != nil {
		var payload CachePayload
		if ok, _ := cache.Get(res.Digest, &payload); ok && payload.Entry == task.Entry.Name {
			if info, err := os.Stat(task.OutPath); err == nil && info.Size() == int64(payload.Length) {
				return true, nil
			}
		}
	}
	if err := writeFileAtomic(task.OutPath, []byte(res.Text)); err != nil {
		return false, err
	}
	if cache != nil {
		payload, err := NewCachePayload(task.Entry.Name, res.Text, res.Digest)
		if err != nil {
			return false, err
		}
		if err := cache.Put(res.Digest, payload); err != nil {
			return false, fmt.Errorf("cache put: %w", err)
		}
	}
	return false, nil
}

// outputDrifted reports whether the on-disk output differs from the
// rendered text. A missing file counts as drift.
func outputDrifted(path, want string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	return !bytes.Equal(data, []byte(want)), nil
}
