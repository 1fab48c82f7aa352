package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/r9s-ai/reindent/internal/format"
)

// skippedDirs are never descended into when collecting files.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Resolver picks the variant for a path. Forced, when set, applies to every
// file; otherwise Extensions is consulted before the built-in extension table.
type Resolver struct {
	Forced     *format.Variant
	Extensions map[string]format.Variant
}

func (r Resolver) variant(path string) format.Variant {
	v, _ := r.Resolve(path)
	return v
}

// Resolve returns the variant for path. The boolean is false when neither
// Forced nor an extension table decided it, in which case JavaScript is
// returned.
func (r Resolver) Resolve(path string) (format.Variant, bool) {
	if r.Forced != nil {
		return *r.Forced, true
	}
	return r.lookup(path)
}

// lookup resolves path by extension alone.
func (r Resolver) lookup(path string) (format.Variant, bool) {
	if v, ok := r.Extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return v, true
	}
	return format.VariantForPath(path)
}

type sourceFile struct {
	path    string
	variant format.Variant
}

// collectSourceFiles expands directories recursively into recognized source
// files. Paths named explicitly are kept even when their extension is
// unknown; they are formatted as JavaScript.
func collectSourceFiles(ctx context.Context, paths []string, r Resolver) ([]sourceFile, error) {
	var files []sourceFile
	seen := make(map[string]struct{})
	addFile := func(path string, v format.Variant) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, sourceFile{path: path, variant: v})
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p, r.variant(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skippedDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := r.lookup(path); ok {
				addFile(path, r.variant(path))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files, nil
}
