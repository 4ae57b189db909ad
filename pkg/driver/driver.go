package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/interpreter"
	"abrvalg/interpreter-go/pkg/lexer"
	"abrvalg/interpreter-go/pkg/parser"
	"abrvalg/interpreter-go/pkg/runtime"
	"abrvalg/interpreter-go/pkg/token"
)

// Version is the interpreter release version, overridden at build time
// with -ldflags "-X".
var Version = "0.1.0"

// Source is a unit of program text plus the name diagnostics use for
// it (a file path, or something like "<repl>").
type Source struct {
	Name string
	Text string
}

// ReadFile loads a script from disk.
func ReadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Source{Name: filepath.Base(path), Text: string(data)}, nil
}

// Tokens runs only the lexer, for debug dumps.
func Tokens(src Source) ([]token.Token, error) {
	return lexer.New(src.Text).Tokenize()
}

// Compile turns source text into a Program, running the lexer and the
// parser. It returns the first stage error as-is so callers can render
// it with position context.
func Compile(src Source) (*ast.Program, error) {
	tokens, err := lexer.New(src.Text).Tokenize()
	if err != nil {
		return nil, err
	}
	return parser.New(tokens).ParseProgram()
}

// Driver couples an interpreter with presentation settings. The CLI
// and the REPL both run programs through one of these so scripts and
// interactive lines behave identically.
type Driver struct {
	interp *interpreter.Interpreter
	styles palette
}

// New builds a driver from a config. A nil config means defaults.
func New(cfg *Config) *Driver {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	interp := interpreter.New()
	interp.SetMaxCallDepth(cfg.MaxCallDepth)
	return &Driver{
		interp: interp,
		styles: newPalette(cfg.Colors),
	}
}

// Interpreter exposes the underlying interpreter (the REPL needs its
// environment to persist across lines).
func (d *Driver) Interpreter() *interpreter.Interpreter {
	return d.interp
}

// SetOutput redirects program print output.
func (d *Driver) SetOutput(w io.Writer) {
	d.interp.SetOutput(w)
}

// Run compiles and evaluates one source unit, returning the value of
// its last statement.
func (d *Driver) Run(src Source) (runtime.Value, error) {
	program, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return d.interp.EvaluateProgram(program)
}

// RenderError formats any stage's error for the terminal: a header
// naming the error kind and message, then a numbered snippet of the
// offending source with a caret under the column.
func (d *Driver) RenderError(err error, src Source) string {
	kind, msg, pos, ok := describeError(err)
	if !ok {
		return err.Error()
	}
	var b strings.Builder
	header := fmt.Sprintf("%s: %s", kind, msg)
	if src.Name != "" {
		header = fmt.Sprintf("%s: %s in %s", kind, msg, src.Name)
	}
	b.WriteString(d.styles.header.Render(header))
	b.WriteByte('\n')
	if pos.Line > 0 {
		b.WriteString(d.renderSnippet(src.Text, pos))
	}
	return b.String()
}

// describeError unpacks the pipeline's error types into kind, message
// and position. Anything else is not ours to pretty-print.
func describeError(err error) (string, string, token.Position, bool) {
	switch e := err.(type) {
	case *lexer.Error:
		return "lex error", e.Msg, e.Pos, true
	case *lexer.IndentationError:
		return "indentation error", e.Msg, e.Pos, true
	case *parser.SyntaxError:
		return "syntax error", e.Msg, e.Pos, true
	case *interpreter.RuntimeError:
		return e.Kind.String() + " error", e.Msg, e.Pos, true
	default:
		return "", "", token.Position{}, false
	}
}

// renderSnippet shows the offending line with one line of context on
// each side and a caret under the reported column. Out-of-range
// positions are clamped so rendering never fails.
func (d *Driver) renderSnippet(text string, pos token.Position) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	line := pos.Line
	if line > len(lines) {
		line = len(lines)
	}
	if line < 1 {
		line = 1
	}
	col := pos.Column
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	writeLine := func(n int) {
		b.WriteString(d.styles.gutter.Render(fmt.Sprintf("%4d | ", n)))
		b.WriteString(lines[n-1])
		b.WriteByte('\n')
	}
	if line > 1 {
		writeLine(line - 1)
	}
	writeLine(line)
	b.WriteString(d.styles.gutter.Render("     | "))
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteString(d.styles.caret.Render("^"))
	b.WriteByte('\n')
	if line < len(lines) {
		writeLine(line + 1)
	}
	return b.String()
}

// palette holds the lipgloss styles for error output. The plain
// variant keeps every style empty so output is byte-identical with
// colors off.
type palette struct {
	header lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
}

func newPalette(colors bool) palette {
	if !colors {
		plain := lipgloss.NewStyle()
		return palette{header: plain, gutter: plain, caret: plain}
	}
	return palette{
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		gutter: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		caret:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}
