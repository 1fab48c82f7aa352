package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/reindent/internal/driver"
	"github.com/r9s-ai/reindent/internal/format"
)

func newLintCmd(opts Options) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "lint [path|-]...",
		Short: "Report unbalanced braces, tags, strings and comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd, opts.WorkDir)
			if err != nil {
				return err
			}
			paths, stdin, err := sourcePaths(args)
			if err != nil {
				return err
			}

			var results []driver.LintResult
			if stdin {
				v, err := st.variant()
				if err != nil {
					return err
				}
				src, err := readLimited(opts.Stdin, st.maxBytes())
				if err != nil {
					return err
				}
				results = []driver.LintResult{{Path: "-", Variant: v, Issues: format.Check(string(src), v)}}
			} else {
				resolver, err := st.resolver(cmd)
				if err != nil {
					return err
				}
				results, err = driver.LintPaths(cmd.Context(), paths, driver.LintOptions{Resolver: resolver, Jobs: jobs, MaxBytes: st.maxBytes()})
				if err != nil {
					return err
				}
			}

			count, failed := 0, false
			for _, res := range results {
				if res.Err != nil {
					failed = true
					_, _ = fmt.Fprintf(opts.Stderr, "lint: %s: %v\n", res.Path, res.Err)
					continue
				}
				for _, issue := range res.Issues {
					count++
					if _, err := fmt.Fprintf(opts.Stdout, "%s:%s\n", res.Path, issue); err != nil {
						return err
					}
				}
			}
			if failed {
				return fmt.Errorf("lint: failed to read some files")
			}
			if count > 0 {
				return fmt.Errorf("lint: %d issue(s) found", count)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringP("lang", "l", "", "language: javascript, typescript, react, tsx or json")
	fs.Int64("max-bytes", 0, "maximum input size in bytes")
	fs.IntVarP(&jobs, "jobs", "j", 0, "number of files checked in parallel (0 = GOMAXPROCS)")
	return cmd
}
