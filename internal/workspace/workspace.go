package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
)

// Transform rewrites the content of one file.
type Transform func(ctx context.Context, content string) (cypress.Result, error)

// Options controls how modified files are written.
type Options struct {
	DryRun bool
	Backup bool
}

// Workspace applies transforms to files on disk.
type Workspace struct {
	logger logger.Logger
	opts   Options
}

// New returns a Workspace logging through l.
func New(l logger.Logger, opts Options) *Workspace {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &Workspace{logger: l, opts: opts}
}

// Outcome describes what happened to one file.
type Outcome struct {
	Path   string
	Status cypress.Status
	// Diff is the unified diff of the change, set in dry-run mode.
	Diff string
	Err  error
}

// Target pairs a file with the transform to run on it.
type Target struct {
	Path      string
	Transform Transform
}

// Apply runs transform on the file at path and writes the result back.
func (w *Workspace) Apply(ctx context.Context, path string, transform Transform) (Outcome, error) {
	outcome := Outcome{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return outcome, fmt.Errorf("failed to stat file: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return outcome, fmt.Errorf("failed to read file: %w", err)
	}

	result, err := transform(ctx, string(content))
	if err != nil {
		return outcome, err
	}
	outcome.Status = result.Status

	if !result.Changed() {
		w.logger.Debugf("Leaving %s unchanged (%s)", path, result.Status)
		return outcome, nil
	}

	if w.opts.DryRun {
		diff, err := unifiedDiff(path, string(content), result.Content)
		if err != nil {
			return outcome, fmt.Errorf("failed to diff file: %w", err)
		}
		outcome.Diff = diff
		w.logger.Logf("Would modify file: %s", path)
		return outcome, nil
	}

	// Nothing is written once the run has been canceled.
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	if w.opts.Backup {
		backupPath := path + ".backup"
		if err := os.WriteFile(backupPath, content, info.Mode().Perm()); err != nil {
			w.logger.Warnf("failed to create backup: %v", err)
		}
	}

	if err := writeFileAtomic(path, []byte(result.Content), info.Mode().Perm()); err != nil {
		return outcome, fmt.Errorf("failed to write modified file: %w", err)
	}

	w.logger.Logf("Successfully modified: %s", path)
	return outcome, nil
}

// ApplyAll applies every target with at most concurrency files in flight.
// A failing target does not stop the others; all failures are returned
// together and recorded on the matching Outcome.
func (w *Workspace) ApplyAll(ctx context.Context, targets []Target, concurrency int) ([]Outcome, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	outcomes := make([]Outcome, len(targets))
	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome{Path: target.Path, Err: err}
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", target.Path, err))
				mu.Unlock()
				return nil
			}

			out, err := w.Apply(ctx, target.Path, target.Transform)
			if err != nil {
				out.Err = err
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", target.Path, err))
				mu.Unlock()
			}
			outcomes[i] = out
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, errs.ErrorOrNil()
}

// LocateTargets finds the cypress config of each project root and pairs it
// with the transform built for it. Roots without a config are reported
// together; the others are still returned.
func LocateTargets(roots []string, build func(path string) Transform) ([]Target, error) {
	var (
		targets []Target
		errs    *multierror.Error
	)
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to resolve path %s: %w", root, err))
			continue
		}

		rel, err := cypress.LocateConfig(os.DirFS(abs), ".")
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", root, err))
			continue
		}

		path := filepath.Join(abs, filepath.FromSlash(rel))
		targets = append(targets, Target{Path: path, Transform: build(path)})
	}
	return targets, errs.ErrorOrNil()
}

// writeFileAtomic replaces path through a sibling temp file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (modified)",
		Context:  3,
	})
}
