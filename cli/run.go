// Package cli exposes the reindent command line for embedding in other
// binaries.
package cli

import internalcli "github.com/r9s-ai/reindent/internal/cli"

type BuildInfo = internalcli.BuildInfo
type Options = internalcli.Options
type ServeRunner = internalcli.ServeRunner
type HTTPRunner = internalcli.HTTPRunner

// Run executes the command line described by args.
func Run(args []string, opts Options) error {
	return internalcli.Run(args, opts)
}
