package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/r9s-ai/reindent/internal/driver"
	"github.com/r9s-ai/reindent/internal/highlight"
)

func newHighlightCmd(opts Options) *cobra.Command {
	var reformat bool
	cmd := &cobra.Command{
		Use:   "highlight [file|-]",
		Short: "Print source with terminal colors",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("highlight accepts at most one file path")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd, opts.WorkDir)
			if err != nil {
				return err
			}
			cfg, err := st.formatConfig()
			if err != nil {
				return err
			}
			enabled, err := colorEnabled(st.v.GetString("color"), opts.Stdout)
			if err != nil {
				return err
			}

			path := "-"
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				path = strings.TrimSpace(args[0])
			}
			var src []byte
			if path == "-" {
				src, err = readLimited(opts.Stdin, st.maxBytes())
			} else {
				src, err = readFile(path, st.maxBytes())
				if err == nil {
					resolver, rerr := st.resolver(cmd)
					if rerr != nil {
						return rerr
					}
					if v, ok := resolver.Resolve(path); ok {
						cfg.Variant = v
					}
				}
			}
			if err != nil {
				return err
			}

			text := string(src)
			if reformat {
				if text, err = driver.FormatSource(text, cfg); err != nil {
					return err
				}
			}
			return highlight.Highlight(opts.Stdout, text, cfg.Variant, enabled)
		},
	}
	addFormatFlags(cmd)
	fs := cmd.Flags()
	fs.String("color", "auto", "colorize output (auto|always|never)")
	fs.BoolVar(&reformat, "format", false, "re-indent before highlighting")
	return cmd
}

func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always", "on":
		return true, nil
	case "never", "off":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("--color must be auto, always or never, got %q", mode)
}

func readFile(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("read file %q: %d bytes exceeds the %d byte limit", path, info.Size(), limit)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}
	return src, nil
}
