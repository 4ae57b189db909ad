package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"abrvalg/interpreter-go/pkg/runtime"
)

// TestFixturePrograms replays every YAML fixture under testdata through
// a fresh driver and checks the expected value, output, or error.
func TestFixturePrograms(t *testing.T) {
	paths, err := DiscoverFixtures(filepath.Join("testdata", "fixtures"))
	if err != nil {
		t.Fatalf("discovering fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found")
	}
	for _, path := range paths {
		path := path
		t.Run(strings.TrimSuffix(filepath.Base(path), ".yaml"), func(t *testing.T) {
			fixture, err := LoadFixture(path)
			if err != nil {
				t.Fatalf("loading fixture: %v", err)
			}
			runFixture(t, fixture)
		})
	}
}

func runFixture(t *testing.T, fixture *Fixture) {
	t.Helper()
	var stdout bytes.Buffer
	d := New(DefaultConfig())
	d.SetOutput(&stdout)

	src := Source{Name: filepath.Base(fixture.Path), Text: fixture.Source}
	value, err := d.Run(src)

	if fixture.Expect.Error != "" {
		if err == nil {
			t.Fatalf("expected error containing %q, program succeeded", fixture.Expect.Error)
		}
		if !strings.Contains(err.Error(), fixture.Expect.Error) {
			t.Fatalf("expected error containing %q, got %q", fixture.Expect.Error, err.Error())
		}
		return
	}
	if err != nil {
		t.Fatalf("program failed: %v\n%s", err, d.RenderError(err, src))
	}

	if len(fixture.Expect.Stdout) > 0 {
		got := stdout.String()
		want := strings.Join(fixture.Expect.Stdout, "\n") + "\n"
		if got != want {
			t.Fatalf("stdout mismatch:\nwant %q\ngot  %q", want, got)
		}
	}
	if fixture.Expect.Result != "" {
		if got := runtime.Inspect(value); got != fixture.Expect.Result {
			t.Fatalf("result mismatch: want %s, got %s", fixture.Expect.Result, got)
		}
	}
}

func TestLoadFixtureRejectsUnknownKeys(t *testing.T) {
	path := writeTempFixture(t, strings.Join([]string{
		"description: bad",
		"source: |",
		"  1 + 1",
		"expekt:",
		"  result: '2'",
	}, "\n"))
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadFixtureRequiresExpectation(t *testing.T) {
	path := writeTempFixture(t, strings.Join([]string{
		"description: no expectations",
		"source: |",
		"  1 + 1",
	}, "\n"))
	_, err := LoadFixture(path)
	fixErr, ok := err.(*FixtureError)
	if !ok {
		t.Fatalf("expected *FixtureError, got %T: %v", err, err)
	}
	if len(fixErr.Issues) != 1 || !strings.Contains(fixErr.Issues[0], "expect must name") {
		t.Fatalf("unexpected issues %v", fixErr.Issues)
	}
}

func TestLoadFixtureRejectsErrorPlusResult(t *testing.T) {
	path := writeTempFixture(t, strings.Join([]string{
		"source: |",
		"  1 + 1",
		"expect:",
		"  result: '2'",
		"  error: boom",
	}, "\n"))
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected exclusivity violation to be rejected")
	}
}

func writeTempFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}
