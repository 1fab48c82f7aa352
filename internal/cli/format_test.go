package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testOptions(t *testing.T, stdin string, stdout *bytes.Buffer) Options {
	t.Helper()
	return Options{
		Stdin:       strings.NewReader(stdin),
		Stdout:      stdout,
		Stderr:      &bytes.Buffer{},
		WorkDir:     t.TempDir(),
		ServeRunner: func(opts ServeRuntimeOptions) error { return nil },
	}
}

func TestFormatStdinToStdout(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Run([]string{"format"}, testOptions(t, "function f(){let x=1;return x;}\n", &out))
	if err != nil {
		t.Fatalf("run format command: %v", err)
	}

	want := "function f(){\n  let x=1;\n  return x;\n}\n"
	if out.String() != want {
		t.Fatalf("unexpected format output\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}
}

func TestFormatLangFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Run([]string{"format", "--lang", "json", "-"}, testOptions(t, `{"a":1}`, &out)); err != nil {
		t.Fatalf("run format --lang json: %v", err)
	}
	if want := "{\n  \"a\": 1\n}"; out.String() != want {
		t.Fatalf("unexpected json output\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}

	out.Reset()
	if err := Run([]string{"format", "-l", "typescript", "--tabs"}, testOptions(t, "f(){let x:number=1;}", &out)); err != nil {
		t.Fatalf("run format -l typescript: %v", err)
	}
	if want := "f(){\n\tlet x: number=1;\n}"; out.String() != want {
		t.Fatalf("unexpected typescript output\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}
}

func TestFormatRejectsBadOptions(t *testing.T) {
	t.Parallel()

	err := Run([]string{"format", "--lang", "cobol"}, testOptions(t, "x", &bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), `unknown language "cobol"`) {
		t.Fatalf("expected unknown language error, got: %v", err)
	}

	err = Run([]string{"format", "--tab-size", "0"}, testOptions(t, "x", &bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "--tab-size must be between 1 and 16") {
		t.Fatalf("expected tab size error, got: %v", err)
	}

	err = Run([]string{"format", "--max-bytes", "3"}, testOptions(t, "a{b;}", &bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "input exceeds 3 bytes") {
		t.Fatalf("expected size limit error, got: %v", err)
	}

	err = Run([]string{"format", "a.js", "-"}, testOptions(t, "", &bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "'-' cannot be combined") {
		t.Fatalf("expected stdin mix error, got: %v", err)
	}
}

func TestFormatWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	if err := os.WriteFile(path, []byte("let x:number=1;\n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	var out bytes.Buffer
	if err := Run([]string{"format", "--write", path}, testOptions(t, "", &out)); err != nil {
		t.Fatalf("run format --write command: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if want := "let x: number=1;\n"; string(got) != want {
		t.Fatalf("unexpected file content\n--- got ---\n%s\n--- want ---\n%s", string(got), want)
	}
	if !strings.Contains(out.String(), "reformatted "+path) {
		t.Fatalf("expected reformatted notice, got: %q", out.String())
	}
}

func TestFormatCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	clean := filepath.Join(dir, "clean.js")
	messy := filepath.Join(dir, "messy.js")
	if err := os.WriteFile(clean, []byte("a{\n  b;\n}\n"), 0o644); err != nil {
		t.Fatalf("write clean file: %v", err)
	}
	if err := os.WriteFile(messy, []byte("a{b;}\n"), 0o644); err != nil {
		t.Fatalf("write messy file: %v", err)
	}

	var out bytes.Buffer
	err := Run([]string{"format", "--check", dir}, testOptions(t, "", &out))
	if err == nil || !strings.Contains(err.Error(), "formatting changes required") {
		t.Fatalf("expected check failure, got: %v", err)
	}
	if out.String() != messy+"\n" {
		t.Fatalf("expected only the messy file listed, got: %q", out.String())
	}

	got, err := os.ReadFile(messy)
	if err != nil {
		t.Fatalf("read messy file: %v", err)
	}
	if string(got) != "a{b;}\n" {
		t.Fatalf("--check must not modify files, got: %q", string(got))
	}

	if err := Run([]string{"format", "--check", clean}, testOptions(t, "", &bytes.Buffer{})); err != nil {
		t.Fatalf("clean file should pass --check: %v", err)
	}
}

func TestFormatFileErrorsGoToStderr(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "big.js")
	if err := os.WriteFile(path, []byte("a{b;}"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	var stderr bytes.Buffer
	opts := testOptions(t, "", &bytes.Buffer{})
	opts.Stderr = &stderr
	err := Run([]string{"format", "--max-bytes", "2", path}, opts)
	if err == nil || !strings.Contains(err.Error(), "failed to format some files") {
		t.Fatalf("expected per-file failure, got: %v", err)
	}
	if !strings.HasPrefix(stderr.String(), "format: "+path+": ") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestFormatWriteRequiresFilePath(t *testing.T) {
	t.Parallel()

	err := Run([]string{"format", "--write"}, testOptions(t, "a{}", &bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "--write requires a file path") {
		t.Fatalf("expected write path error, got: %v", err)
	}
}

func TestFormatProjectFile(t *testing.T) {
	t.Parallel()

	opts := testOptions(t, "a{b;}", &bytes.Buffer{})
	toml := "[format]\ntab_size = 4\nlanguage = \"typescript\"\n"
	if err := os.WriteFile(filepath.Join(opts.WorkDir, ".reindent.toml"), []byte(toml), 0o644); err != nil {
		t.Fatalf("write project file: %v", err)
	}

	var out bytes.Buffer
	opts.Stdout = &out
	if err := Run([]string{"format"}, opts); err != nil {
		t.Fatalf("run format with project file: %v", err)
	}
	if want := "a{\n    b;\n}"; out.String() != want {
		t.Fatalf("project tab_size not applied\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}

	out.Reset()
	opts.Stdin = strings.NewReader("a{b;}")
	if err := Run([]string{"format", "--tab-size", "3"}, opts); err != nil {
		t.Fatalf("run format with flag override: %v", err)
	}
	if want := "a{\n   b;\n}"; out.String() != want {
		t.Fatalf("flag should override project file\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}
}

func TestFormatInvalidProjectFile(t *testing.T) {
	t.Parallel()

	opts := testOptions(t, "x", &bytes.Buffer{})
	if err := os.WriteFile(filepath.Join(opts.WorkDir, ".reindent.toml"), []byte("[format]\ntab_size = 40\n"), 0o644); err != nil {
		t.Fatalf("write project file: %v", err)
	}
	err := Run([]string{"format"}, opts)
	if err == nil || !strings.Contains(err.Error(), "tab_size must be between 1 and 16") {
		t.Fatalf("expected project validation error, got: %v", err)
	}
}

func TestFormatEnvironmentPrecedence(t *testing.T) {
	t.Setenv("REINDENT_TAB_SIZE", "8")

	opts := testOptions(t, "a{b;}", &bytes.Buffer{})
	if err := os.WriteFile(filepath.Join(opts.WorkDir, ".reindent.toml"), []byte("[format]\ntab_size = 4\n"), 0o644); err != nil {
		t.Fatalf("write project file: %v", err)
	}

	var out bytes.Buffer
	opts.Stdout = &out
	if err := Run([]string{"format"}, opts); err != nil {
		t.Fatalf("run format: %v", err)
	}
	if want := "a{\n" + strings.Repeat(" ", 8) + "b;\n}"; out.String() != want {
		t.Fatalf("environment should override project file\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}

	out.Reset()
	opts.Stdin = strings.NewReader("a{b;}")
	if err := Run([]string{"format", "--tab-size", "1"}, opts); err != nil {
		t.Fatalf("run format: %v", err)
	}
	if want := "a{\n b;\n}"; out.String() != want {
		t.Fatalf("flag should override environment\n--- got ---\n%s\n--- want ---\n%s", out.String(), want)
	}
}
