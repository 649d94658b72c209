// Package batch runs one aggregation kind over every match export of a game
// title and publishes one JSON summary per export.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-cwl-stats/internal/aggregator"
	"github.com/pable/go-cwl-stats/internal/layout"
	"github.com/pable/go-cwl-stats/internal/logging"
	"github.com/pable/go-cwl-stats/internal/model"
	"github.com/pable/go-cwl-stats/internal/output"
	"github.com/pable/go-cwl-stats/internal/source"
)

// ErrBatchFailed is wrapped by Run's error whenever at least one file failed.
var ErrBatchFailed = errors.New("batch failed")

var errDuplicateOutput = errors.New("another export maps to the same output name")

// Options configures a batch run.
type Options struct {
	Title      layout.Title
	Kind       model.Kind
	InputRoot  string // exports are read from <InputRoot>/<title>
	OutputRoot string // summaries go to <OutputRoot>/<title>/<kind>
	Registry   *layout.Registry
	Jobs       int  // max files in flight; <= 0 means all at once
	Partial    bool // publish succeeded files even when others fail

	// NewSink opens the output directory. Defaults to output.NewDir.
	NewSink func(dir string) (output.Sink, error)
}

// FileResult is the fate of one export.
type FileResult struct {
	Name   string // export file name
	Output string // published summary path, empty if nothing was published
	Err    error
}

// Outcome lists what happened to every export in the batch.
type Outcome struct {
	Title     layout.Title
	Kind      model.Kind
	OutputDir string
	Succeeded []FileResult // published
	Failed    []FileResult
	Discarded []FileResult // aggregated fine but withheld because the batch failed
	Elapsed   time.Duration
}

// Total is the number of exports considered.
func (o Outcome) Total() int {
	return len(o.Succeeded) + len(o.Failed) + len(o.Discarded)
}

type fileRun struct {
	name   string
	staged output.Staged
	err    error
}

// Run aggregates every export of opts.Title.
//
// The layout is resolved before anything touches the filesystem. Exports are
// processed concurrently and independently; a failing file never cancels its
// siblings. Unless opts.Partial is set, summaries are only published when
// every export succeeded.
func Run(ctx context.Context, opts Options) (Outcome, error) {
	start := time.Now()
	title := opts.Title.Normalize()
	out := Outcome{Title: title, Kind: opts.Kind}

	registry := opts.Registry
	if registry == nil {
		registry = layout.Builtin()
	}
	l, err := registry.Lookup(title)
	if err != nil {
		return out, err
	}
	if opts.Kind != model.KindPlayer && opts.Kind != model.KindTeam {
		return out, fmt.Errorf("unknown aggregation kind %q", opts.Kind)
	}

	ctx = logging.AddMetaToContext(ctx,
		slog.String("title", string(title)),
		slog.String("kind", opts.Kind.String()),
	)
	logger := logging.FromContext(ctx)

	newSink := opts.NewSink
	if newSink == nil {
		newSink = func(dir string) (output.Sink, error) { return output.NewDir(dir) }
	}
	out.OutputDir = filepath.Join(opts.OutputRoot, string(title), opts.Kind.String())
	sink, err := newSink(out.OutputDir)
	if err != nil {
		return out, err
	}

	inputDir := filepath.Join(opts.InputRoot, string(title))
	names, err := listExports(inputDir)
	if err != nil {
		return out, err
	}
	logger.Info("Starting batch", "files", len(names), "input", inputDir, "output", out.OutputDir)

	runs := make([]fileRun, len(names))
	seen := make(map[string]string, len(names))

	var g errgroup.Group
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, name := range names {
		base := source.BaseName(name)
		if prev, dup := seen[base]; dup {
			runs[i] = fileRun{name: name, err: fmt.Errorf("%s: %w (%s)", name, errDuplicateOutput, prev)}
			continue
		}
		seen[base] = name

		g.Go(func() error {
			runs[i] = processFile(ctx, sink, filepath.Join(inputDir, name), opts.Kind, l)
			return nil
		})
	}
	// Closures always return nil; per-file errors live in runs.
	g.Wait()

	failed := false
	for _, r := range runs {
		if r.err != nil {
			failed = true
			break
		}
	}

	publish := !failed || opts.Partial
	for _, r := range runs {
		switch {
		case r.err != nil:
			logger.Error("File failed", "file", r.name, "error", r.err.Error())
			out.Failed = append(out.Failed, FileResult{Name: r.name, Err: r.err})
		case publish:
			target, err := sink.Commit(r.staged)
			if err != nil {
				logger.Error("File failed", "file", r.name, "error", err.Error())
				out.Failed = append(out.Failed, FileResult{Name: r.name, Err: fmt.Errorf("%s: %w", r.name, err)})
				continue
			}
			logger.Info("Wrote file", "file", r.name, "output", filepath.Base(target))
			out.Succeeded = append(out.Succeeded, FileResult{Name: r.name, Output: target})
		default:
			if err := sink.Discard(r.staged); err != nil {
				logger.Warn("Could not discard staged output", "file", r.name, "error", err.Error())
			}
			out.Discarded = append(out.Discarded, FileResult{Name: r.name})
		}
	}

	out.Elapsed = time.Since(start)
	logger.Info("Finished batch",
		"succeeded", len(out.Succeeded),
		"failed", len(out.Failed),
		"discarded", len(out.Discarded),
		"elapsed", out.Elapsed.String(),
	)

	if len(out.Failed) > 0 {
		errs := make([]error, len(out.Failed))
		for i, f := range out.Failed {
			errs[i] = f.Err
		}
		return out, fmt.Errorf("%w: %d of %d files failed: %w",
			ErrBatchFailed, len(out.Failed), out.Total(), errors.Join(errs...))
	}
	return out, nil
}

// listExports returns the match exports in dir, sorted by name.
func listExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !source.IsMatchFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// processFile aggregates one export and stages its summary.
func processFile(ctx context.Context, sink output.Sink, path string, kind model.Kind, l layout.Layout) fileRun {
	name := filepath.Base(path)
	run := fileRun{name: name}
	logging.FromContext(ctx).Info("Processing file", "file", name)

	f, err := source.Open(path)
	if err != nil {
		run.err = fmt.Errorf("%s: %w", name, err)
		return run
	}
	defer f.Close()

	summary, err := aggregator.Aggregate(kind, f, l)
	if err != nil {
		run.err = fmt.Errorf("%s: %w", name, err)
		return run
	}

	run.staged, err = sink.Stage(source.BaseName(name), summary)
	if err != nil {
		run.err = fmt.Errorf("%s: %w", name, err)
	}
	return run
}
