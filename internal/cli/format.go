package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/reindent/internal/driver"
)

type formatOptions struct {
	write bool
	check bool
	jobs  int
}

func newFormatCmd(opts Options) *cobra.Command {
	formatOpts := formatOptions{}
	cmd := &cobra.Command{
		Use:   "format [path|-]...",
		Short: "Re-indent source files or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatOpts.write && formatOpts.check {
				return errors.New("--write cannot be used with --check")
			}
			st, err := loadSettings(cmd, opts.WorkDir)
			if err != nil {
				return err
			}
			cfg, err := st.formatConfig()
			if err != nil {
				return err
			}

			paths, stdin, err := sourcePaths(args)
			if err != nil {
				return err
			}
			if stdin {
				if formatOpts.write {
					return errors.New("--write requires a file path")
				}
				src, err := readLimited(opts.Stdin, st.maxBytes())
				if err != nil {
					return err
				}
				formatted, err := driver.FormatSource(string(src), cfg)
				if err != nil {
					return err
				}
				if formatOpts.check {
					if formatted != string(src) {
						_, _ = fmt.Fprintln(opts.Stdout, "-")
						return errors.New("format: formatting changes required")
					}
					return nil
				}
				_, err = io.WriteString(opts.Stdout, formatted)
				return err
			}

			resolver, err := st.resolver(cmd)
			if err != nil {
				return err
			}
			results, err := driver.FormatPaths(cmd.Context(), paths, driver.FormatOptions{
				Config:   cfg,
				Resolver: resolver,
				Check:    formatOpts.check,
				Stdout:   !formatOpts.write && !formatOpts.check,
				Jobs:     formatOpts.jobs,
				MaxBytes: st.maxBytes(),
			})
			if err != nil {
				return err
			}
			return renderFormatResults(opts, results, formatOpts)
		},
	}

	addFormatFlags(cmd)
	fs := cmd.Flags()
	fs.BoolVarP(&formatOpts.write, "write", "w", false, "write result back to file")
	fs.BoolVar(&formatOpts.check, "check", false, "list files whose formatting would change and fail if any")
	fs.IntVarP(&formatOpts.jobs, "jobs", "j", 0, "number of files formatted in parallel (0 = GOMAXPROCS)")
	return cmd
}

// sourcePaths trims args and reports whether input comes from stdin.
func sourcePaths(args []string) ([]string, bool, error) {
	paths := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			paths = append(paths, a)
		}
	}
	switch {
	case len(paths) == 0:
		return nil, true, nil
	case len(paths) == 1 && paths[0] == "-":
		return nil, true, nil
	}
	for _, p := range paths {
		if p == "-" {
			return nil, false, errors.New("'-' cannot be combined with file paths")
		}
	}
	return paths, false, nil
}

func renderFormatResults(opts Options, results []driver.FormatResult, formatOpts formatOptions) error {
	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			_, _ = fmt.Fprintf(opts.Stderr, "format: %s: %v\n", res.Path, res.Err)
			continue
		}
		switch {
		case formatOpts.check:
			if res.Changed {
				hasChanges = true
				_, _ = fmt.Fprintln(opts.Stdout, res.Path)
			}
		case formatOpts.write:
			if res.Changed {
				_, _ = fmt.Fprintf(opts.Stdout, "reformatted %s\n", res.Path)
			}
		default:
			if _, err := opts.Stdout.Write(res.Formatted); err != nil {
				return err
			}
		}
	}
	if hasErrors {
		return errors.New("format: failed to format some files")
	}
	if hasChanges {
		return errors.New("format: formatting changes required")
	}
	return nil
}
