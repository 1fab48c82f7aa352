package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/r9s-ai/reindent/internal/config"
	"github.com/r9s-ai/reindent/internal/driver"
	"github.com/r9s-ai/reindent/internal/format"
	"github.com/r9s-ai/reindent/internal/httpapi"
)

const envPrefix = "reindent"

// settings layers one command's flags over REINDENT_* environment variables
// over the project file. Flag defaults come last.
type settings struct {
	v       *viper.Viper
	project *config.Project
}

func loadSettings(cmd *cobra.Command, workDir string) (*settings, error) {
	project, _, err := config.Discover(workDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.MergeConfigMap(project.Values()); err != nil {
		return nil, fmt.Errorf("merge %s: %w", config.FileName, err)
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return &settings{v: v, project: project}, nil
}

// formatConfig builds the engine configuration from tab-size, tabs and lang.
func (s *settings) formatConfig() (format.Config, error) {
	cfg := format.DefaultConfig()
	cfg.IndentWidth = s.v.GetInt("tab-size")
	cfg.UseSpaces = !s.v.GetBool("tabs")
	if cfg.IndentWidth < 1 || cfg.IndentWidth > 16 {
		return cfg, fmt.Errorf("--tab-size must be between 1 and 16, got %d", cfg.IndentWidth)
	}
	v, err := s.variant()
	if err != nil {
		return cfg, err
	}
	cfg.Variant = v
	return cfg, nil
}

func (s *settings) variant() (format.Variant, error) {
	lang := strings.TrimSpace(s.v.GetString("lang"))
	if lang == "" {
		return format.JavaScript, nil
	}
	v, ok := format.ParseVariant(lang)
	if !ok {
		return format.JavaScript, fmt.Errorf("unknown language %q", lang)
	}
	return v, nil
}

// resolver picks variants for files. Only an explicit --lang forces a
// variant on files; the project and environment language apply to stdin.
func (s *settings) resolver(cmd *cobra.Command) (driver.Resolver, error) {
	r := driver.Resolver{Extensions: s.project.ExtensionVariants()}
	if f := cmd.Flags().Lookup("lang"); f != nil && f.Changed {
		v, err := s.variant()
		if err != nil {
			return r, err
		}
		r.Forced = &v
	}
	return r, nil
}

func (s *settings) maxBytes() int64 {
	if n := s.v.GetInt64("max-bytes"); n > 0 {
		return n
	}
	return httpapi.DefaultMaxBytes
}

// readLimited reads all of r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	src, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if int64(len(src)) > limit {
		return nil, fmt.Errorf("input exceeds %d bytes", limit)
	}
	return src, nil
}

func addFormatFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringP("lang", "l", "", "language: javascript, typescript, react, tsx or json")
	fs.Int("tab-size", 2, "tab size when using spaces")
	fs.Bool("tabs", false, "use tabs for indentation")
	fs.Int64("max-bytes", httpapi.DefaultMaxBytes, "maximum input size in bytes")
}
