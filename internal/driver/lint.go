package driver

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/r9s-ai/reindent/internal/format"
)

// LintOptions configures LintPaths.
type LintOptions struct {
	Resolver Resolver
	Jobs     int
	// MaxBytes, when positive, makes larger files fail without being read.
	MaxBytes int64
}

// LintResult lists the structural issues found in one file.
type LintResult struct {
	Path    string
	Variant format.Variant
	Issues  []format.Issue
	Err     error
}

// LintPaths runs format.Check over the collected files in parallel.
func LintPaths(ctx context.Context, paths []string, opts LintOptions) ([]LintResult, error) {
	files, err := collectSourceFiles(ctx, paths, opts.Resolver)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("lint: no source files found")
	}

	results := make([]LintResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := LintResult{Path: f.path, Variant: f.variant}
			data, err := readSource(f.path, opts.MaxBytes)
			if err != nil {
				result.Err = err
			} else {
				result.Issues = format.Check(string(data), f.variant)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
