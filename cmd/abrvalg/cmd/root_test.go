package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunScriptFromFile(t *testing.T) {
	path := writeScript(t, "greet.abr", "print('hello from a script')\n")

	err, stdout, stderr := captureCLI(t, []string{"--no-color", path})
	if err != nil {
		t.Fatalf("expected success, got %v (stderr: %q)", err, stderr)
	}
	if stdout != "hello from a script\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestScriptEchoesFinalValue(t *testing.T) {
	path := writeScript(t, "sum.abr", "40 + 2\n")

	err, stdout, stderr := captureCLI(t, []string{"--no-color", path})
	if err != nil {
		t.Fatalf("expected success, got %v (stderr: %q)", err, stderr)
	}
	if stdout != "42\n" {
		t.Fatalf("expected the final value to be echoed, got %q", stdout)
	}
}

func TestScriptEchoesStringsUnquoted(t *testing.T) {
	path := writeScript(t, "word.abr", "'done'\n")

	err, stdout, stderr := captureCLI(t, []string{"--no-color", path})
	if err != nil {
		t.Fatalf("expected success, got %v (stderr: %q)", err, stderr)
	}
	if stdout != "done\n" {
		t.Fatalf("expected an unquoted string, got %q", stdout)
	}
}

func TestScriptErrorRendersReport(t *testing.T) {
	path := writeScript(t, "broken.abr", "x = 1\ny = ghost\n")

	err, _, stderr := captureCLI(t, []string{"--no-color", path})
	if err == nil {
		t.Fatalf("expected a failing exit")
	}
	if !strings.Contains(stderr, "name 'ghost' is not defined") {
		t.Fatalf("expected an unbound name report, got %q", stderr)
	}
	if !strings.Contains(stderr, "broken.abr") {
		t.Fatalf("expected the report to name the script, got %q", stderr)
	}
	if strings.Contains(stderr, "error: reported") {
		t.Fatalf("rendered failures must not be printed twice: %q", stderr)
	}
}

func TestMissingScriptFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.abr")

	err, _, stderr := captureCLI(t, []string{"--no-color", missing})
	if err == nil {
		t.Fatalf("expected an error for a missing script")
	}
	if !strings.HasPrefix(stderr, "error: ") {
		t.Fatalf("expected a plain error line, got %q", stderr)
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	path := writeScript(t, "ok.abr", "1 + 1\n")

	err, _, stderr := captureCLI(t, []string{"--config", missing, path})
	if err == nil {
		t.Fatalf("expected an error for a missing explicit config")
	}
	if !strings.Contains(stderr, "config file not found") {
		t.Fatalf("expected a config error, got %q", stderr)
	}
}

func TestPrintTokensFlag(t *testing.T) {
	path := writeScript(t, "tokens.abr", "x = 1\n")

	err, stdout, stderr := captureCLI(t, []string{"--no-color", "--print-tokens", path})
	if err != nil {
		t.Fatalf("expected success, got %v (stderr: %q)", err, stderr)
	}
	for _, want := range []string{`identifier "x"`, "'='", `number "1"`, "NEWLINE", "EOF"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected token dump to contain %q, got %q", want, stdout)
		}
	}
}

func TestPrintASTFlag(t *testing.T) {
	path := writeScript(t, "tree.abr", "x = 1 + 2\n")

	err, stdout, stderr := captureCLI(t, []string{"--no-color", "--print-ast", path})
	if err != nil {
		t.Fatalf("expected success, got %v (stderr: %q)", err, stderr)
	}
	for _, want := range []string{"Program", "Assign x", "BinaryOp +", "NumberLiteral 1"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected AST dump to contain %q, got %q", want, stdout)
		}
	}
}

func TestPrintTokensReportsLexErrors(t *testing.T) {
	path := writeScript(t, "bad.abr", "x = 'open\n")

	err, _, stderr := captureCLI(t, []string{"--no-color", "--print-tokens", path})
	if err == nil {
		t.Fatalf("expected a failing exit")
	}
	if !strings.Contains(stderr, "lex error") {
		t.Fatalf("expected a lex report, got %q", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	err, stdout, stderr := captureCLI(t, []string{"version"})
	if err != nil {
		t.Fatalf("expected success, got %v (stderr: %q)", err, stderr)
	}
	if !strings.Contains(stdout, "abrvalg v") {
		t.Fatalf("expected a version banner, got %q", stdout)
	}
}

func captureCLI(t *testing.T, args []string) (error, string, string) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	cfgFile = ""
	noColor = false
	printTokens = false
	printAST = false

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	rootCmd.SetArgs(args)
	runErr := Execute()

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}

	if err := rOut.Close(); err != nil {
		t.Fatalf("stdout pipe close: %v", err)
	}
	if err := rErr.Close(); err != nil {
		t.Fatalf("stderr pipe close: %v", err)
	}

	return runErr, string(outBytes), string(errBytes)
}
