package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/r9s-ai/reindent/internal/httpapi"
)

func TestRootCmdHasSubcommands(t *testing.T) {
	t.Parallel()

	opts := normalizeOptions(Options{
		ServeRunner: func(opts ServeRuntimeOptions) error { return nil },
	})
	root := newRootCmd(opts)

	for _, name := range []string{"serve", "format", "lint", "highlight", "http", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("find %s subcommand: %v", name, err)
		}
		if cmd.Name() != name {
			t.Fatalf("expected %s subcommand, got %s", name, cmd.Name())
		}
	}
}

func TestRunDefaultsToServe(t *testing.T) {
	t.Parallel()

	called := false
	err := Run(nil, Options{
		Stdin:   strings.NewReader(""),
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
		WorkDir: t.TempDir(),
		ServeRunner: func(opts ServeRuntimeOptions) error {
			called = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("run root command: %v", err)
	}
	if !called {
		t.Fatalf("expected default serve runner to be called")
	}
}

func TestServePassesBuildInfo(t *testing.T) {
	t.Parallel()

	var got ServeRuntimeOptions
	opts := testOptions(t, "", &bytes.Buffer{})
	opts.BuildInfo = BuildInfo{Version: "0.4.0"}
	opts.ServeRunner = func(o ServeRuntimeOptions) error {
		got = o
		return errors.New("stopped")
	}
	err := Run([]string{"serve"}, opts)
	if err == nil || err.Error() != "stopped" {
		t.Fatalf("expected runner error to propagate, got: %v", err)
	}
	if got.BuildInfo.Version != "0.4.0" || got.Stdin == nil {
		t.Fatalf("unexpected runtime options: %+v", got)
	}
}

func TestVersionCommandOutput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	opts := testOptions(t, "", &out)
	opts.BuildInfo = BuildInfo{
		Version:   "1.2.3",
		Commit:    "abc123",
		BuildDate: "2026-02-26T11:11:11Z\n",
	}
	if err := Run([]string{"version"}, opts); err != nil {
		t.Fatalf("run version command: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "reindent version=1.2.3 commit=abc123 build_date=2026-02-26T11:11:11Z") {
		t.Fatalf("unexpected version output: %q", got)
	}
}

func TestVersionFlagsRemoved(t *testing.T) {
	t.Parallel()

	opts := testOptions(t, "", &bytes.Buffer{})
	opts.ServeRunner = func(opts ServeRuntimeOptions) error {
		return errors.New("should not run")
	}

	err := Run([]string{"--version"}, opts)
	if err == nil || !strings.Contains(err.Error(), "--version") {
		t.Fatalf("expected --version error, got: %v", err)
	}

	err = Run([]string{"-v"}, opts)
	if err == nil || !strings.Contains(err.Error(), "-v") {
		t.Fatalf("expected -v error, got: %v", err)
	}
}

func TestDotEnvIsLoaded(t *testing.T) {
	// Registers a cleanup that unsets the variable again after the test.
	t.Setenv("REINDENT_ADDR", "")
	if err := os.Unsetenv("REINDENT_ADDR"); err != nil {
		t.Fatalf("unset env: %v", err)
	}

	opts := testOptions(t, "", &bytes.Buffer{})
	if err := os.WriteFile(filepath.Join(opts.WorkDir, ".env"), []byte("REINDENT_ADDR=127.0.0.1:7777\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	var gotAddr string
	opts.HTTPRunner = func(ctx context.Context, srv *httpapi.Server, addr string) error {
		gotAddr = addr
		return nil
	}
	if err := Run([]string{"http"}, opts); err != nil {
		t.Fatalf("run http: %v", err)
	}
	if gotAddr != "127.0.0.1:7777" {
		t.Fatalf("expected addr from .env, got %q", gotAddr)
	}
}
