// Package driver applies the formatter to files on disk.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/r9s-ai/reindent/internal/format"
)

// FormatOptions configures FormatPaths. Config.Variant is ignored; each file's
// variant comes from Resolver.
type FormatOptions struct {
	Config   format.Config
	Resolver Resolver
	Check    bool
	Stdout   bool
	Jobs     int
	MaxBytes int64
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Variant   format.Variant
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatSource formats src and keeps a single trailing newline when src had
// one.
func FormatSource(src string, cfg format.Config) (string, error) {
	res := format.Format(src, cfg)
	if !res.OK() {
		return "", res.Err()
	}
	out := res.Text()
	if out != "" && strings.HasSuffix(src, "\n") {
		out += "\n"
	}
	return out, nil
}

// FormatPaths formats provided files or directories (recursively collecting
// known extensions) in parallel. When opts.Check is true, files are not
// modified; Changed reports whether formatting would update them. When
// opts.Stdout is true, formatted content is returned without touching disk.
// Results keep the sorted file order regardless of completion order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths, opts.Resolver)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(f, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatFile(f sourceFile, opts FormatOptions) FormatResult {
	result := FormatResult{Path: f.path, Variant: f.variant}
	data, err := readSource(f.path, opts.MaxBytes)
	if err != nil {
		result.Err = err
		return result
	}

	cfg := opts.Config
	cfg.Variant = f.variant
	formatted, err := FormatSource(string(data), cfg)
	if err != nil {
		result.Err = err
		return result
	}
	out := []byte(formatted)
	changed := !bytes.Equal(data, out)

	switch {
	case opts.Check:
		result.Changed = changed
	case opts.Stdout:
		result.Formatted = out
		result.Changed = changed
	case changed:
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(f.path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(f.path, out, mode.Perm()); err != nil {
			result.Err = err
		} else {
			result.Changed = true
		}
	}
	return result
}

// readSource reads path, refusing files larger than limit when limit is
// positive.
func readSource(path string, limit int64) ([]byte, error) {
	if limit > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > limit {
			return nil, fmt.Errorf("file is %d bytes, limit is %d", info.Size(), limit)
		}
	}
	return os.ReadFile(path)
}

func jobLimit(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}
