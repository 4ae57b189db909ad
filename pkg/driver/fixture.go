package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is one end-to-end program case loaded from a YAML file:
// source text plus what running it should produce. The test suite
// replays these through a Driver.
type Fixture struct {
	Path        string
	Description string
	Source      string
	Expect      FixtureExpect
}

// FixtureExpect describes the observable outcome: the inspect-rendered
// final value, printed lines, or an error substring. Error is
// exclusive with the other two.
type FixtureExpect struct {
	Result string
	Stdout []string
	Error  string
}

type fixtureFile struct {
	Description string `yaml:"description"`
	Source      string `yaml:"source"`
	Expect      struct {
		Result string   `yaml:"result"`
		Stdout []string `yaml:"stdout"`
		Error  string   `yaml:"error"`
	} `yaml:"expect"`
}

// FixtureError aggregates everything wrong with one fixture file.
type FixtureError struct {
	Path   string
	Issues []string
}

func (e *FixtureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fixture %s invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadFixture parses and validates one fixture file. Unknown YAML keys
// are rejected so typos in expectation names fail loudly.
func LoadFixture(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw fixtureFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fixture: %s is empty", path)
		}
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}

	fixture := &Fixture{
		Path:        path,
		Description: raw.Description,
		Source:      raw.Source,
		Expect: FixtureExpect{
			Result: raw.Expect.Result,
			Stdout: raw.Expect.Stdout,
			Error:  raw.Expect.Error,
		},
	}
	if err := fixture.validate(); err != nil {
		return nil, err
	}
	return fixture, nil
}

func (f *Fixture) validate() error {
	var issues []string
	if strings.TrimSpace(f.Source) == "" {
		issues = append(issues, "source must be provided")
	}
	if f.Expect.Result == "" && len(f.Expect.Stdout) == 0 && f.Expect.Error == "" {
		issues = append(issues, "expect must name a result, stdout lines, or an error")
	}
	if f.Expect.Error != "" && (f.Expect.Result != "" || len(f.Expect.Stdout) > 0) {
		issues = append(issues, "expect.error excludes expect.result and expect.stdout")
	}
	if len(issues) > 0 {
		return &FixtureError{Path: f.Path, Issues: issues}
	}
	return nil
}

// DiscoverFixtures lists fixture files under a directory in a stable
// order.
func DiscoverFixtures(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("fixture: scan %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}
