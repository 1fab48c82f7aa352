// Package config loads the optional .reindent.toml project file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/r9s-ai/reindent/internal/format"
)

// FileName is the project file looked up from the working directory upwards.
const FileName = ".reindent.toml"

// File mirrors the project file layout.
type File struct {
	Format     FormatSection     `toml:"format"`
	Extensions map[string]string `toml:"extensions"`
	HTTP       HTTPSection       `toml:"http"`
}

type FormatSection struct {
	TabSize  int    `toml:"tab_size"`
	UseTabs  bool   `toml:"use_tabs"`
	Language string `toml:"language"`
	MaxBytes int64  `toml:"max_bytes"`
}

type HTTPSection struct {
	Addr string `toml:"addr"`
}

// Project is a discovered and validated project file.
type Project struct {
	Path string
	Root string
	File File

	meta toml.MetaData
}

// Find walks up from startDir and returns the first project file found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Wrapf(err, "stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the project file for startDir. The boolean is
// false when there is none.
func Discover(startDir string) (*Project, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	p, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return p, true, nil
}

// Load decodes and validates the project file at path.
func Load(path string) (*Project, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	p := &Project{Path: path, Root: filepath.Dir(path), File: f, meta: meta}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) validate() error {
	f := p.File
	if p.meta.IsDefined("format", "tab_size") && (f.Format.TabSize < 1 || f.Format.TabSize > 16) {
		return errors.Errorf("%s: [format].tab_size must be between 1 and 16, got %d", p.Path, f.Format.TabSize)
	}
	if p.meta.IsDefined("format", "language") {
		if _, ok := format.ParseVariant(f.Format.Language); !ok {
			return errors.Errorf("%s: [format].language: unknown language %q", p.Path, f.Format.Language)
		}
	}
	if p.meta.IsDefined("format", "max_bytes") && f.Format.MaxBytes <= 0 {
		return errors.Errorf("%s: [format].max_bytes must be positive", p.Path)
	}
	for ext, lang := range f.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Errorf("%s: [extensions]: %q must start with '.'", p.Path, ext)
		}
		if _, ok := format.ParseVariant(lang); !ok {
			return errors.Errorf("%s: [extensions].%q: unknown language %q", p.Path, ext, lang)
		}
	}
	return nil
}

// Values returns the keys the file sets, named like the command-line flags
// they back. Keys absent from the file are left out so they cannot mask
// defaults.
func (p *Project) Values() map[string]any {
	out := map[string]any{}
	if p == nil {
		return out
	}
	f := p.File
	if p.meta.IsDefined("format", "tab_size") {
		out["tab-size"] = f.Format.TabSize
	}
	if p.meta.IsDefined("format", "use_tabs") {
		out["tabs"] = f.Format.UseTabs
	}
	if p.meta.IsDefined("format", "language") {
		out["lang"] = f.Format.Language
	}
	if p.meta.IsDefined("format", "max_bytes") {
		out["max-bytes"] = f.Format.MaxBytes
	}
	if p.meta.IsDefined("http", "addr") {
		out["addr"] = f.HTTP.Addr
	}
	return out
}

// ExtensionVariants resolves the [extensions] table.
func (p *Project) ExtensionVariants() map[string]format.Variant {
	if p == nil || len(p.File.Extensions) == 0 {
		return nil
	}
	out := make(map[string]format.Variant, len(p.File.Extensions))
	for ext, lang := range p.File.Extensions {
		v, _ := format.ParseVariant(lang)
		out[strings.ToLower(ext)] = v
	}
	return out
}
