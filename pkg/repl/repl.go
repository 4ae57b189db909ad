// Package repl implements the interactive session: a liner-backed
// read loop that accumulates multi-line blocks, evaluates them against
// one persistent environment, and renders results and errors.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"abrvalg/interpreter-go/pkg/driver"
	"abrvalg/interpreter-go/pkg/parser"
	"abrvalg/interpreter-go/pkg/runtime"
)

const (
	promptMain = ">>> "
	promptCont = "... "
)

// REPL drives an interactive session. All programs run through the
// same Driver, so bindings persist from line to line.
type REPL struct {
	driver      *driver.Driver
	historyPath string
	out         io.Writer
}

func New(d *driver.Driver, cfg *driver.Config) *REPL {
	if cfg == nil {
		cfg = driver.DefaultConfig()
	}
	return &REPL{
		driver:      d,
		historyPath: cfg.HistoryFile,
		out:         os.Stdout,
	}
}

// SetOutput redirects the REPL's own output (results and errors).
// Program print output follows the driver's writer.
func (r *REPL) SetOutput(w io.Writer) {
	r.out = w
}

// Run reads input until EOF. Ctrl+C abandons the line being typed,
// Ctrl+D ends the session.
func (r *REPL) Run() error {
	fmt.Fprintf(r.out, "Abrvalg %s. Ctrl+C clears the current input, Ctrl+D exits.\n", driver.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if r.historyPath != "" {
		if f, err := os.Open(r.historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer r.saveHistory(ln)

	var pending strings.Builder
	for {
		prompt := promptMain
		if pending.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			pending.Reset()
			continue
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}

		if pending.Len() == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			pending.WriteString(line)
		} else {
			// A blank line ends an open block and submits it.
			if strings.TrimSpace(line) == "" {
				r.submit(pending.String())
				pending.Reset()
				continue
			}
			pending.WriteByte('\n')
			pending.WriteString(line)
		}

		if needsMore(pending.String()) {
			continue
		}
		r.submit(pending.String())
		pending.Reset()
	}
}

// submit evaluates one accumulated input. Results print in their
// inspect form; a none result prints nothing. Errors render with
// source context and leave the environment untouched.
func (r *REPL) submit(text string) {
	src := driver.Source{Name: "<repl>", Text: text}
	value, err := r.driver.Run(src)
	if err != nil {
		fmt.Fprint(r.out, r.driver.RenderError(err, src))
		return
	}
	if _, isNone := value.(runtime.NoneValue); isNone {
		return
	}
	fmt.Fprintln(r.out, runtime.Inspect(value))
}

func (r *REPL) saveHistory(ln *liner.State) {
	if r.historyPath == "" {
		return
	}
	f, err := os.Create(r.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = ln.WriteHistory(f)
}

// needsMore reports whether the input so far is a prefix of a complete
// program rather than a broken one: the reader keeps going while the
// last line sits inside an indented block, or while the parse fails
// only because the input ended (an open block header).
func needsMore(text string) bool {
	last := lastLine(text)
	if strings.TrimSpace(last) != "" && (strings.HasPrefix(last, " ") || strings.HasPrefix(last, "\t")) {
		return true
	}
	_, err := driver.Compile(driver.Source{Name: "<repl>", Text: text})
	if err == nil {
		return false
	}
	synErr, ok := err.(*parser.SyntaxError)
	if !ok {
		return false
	}
	return strings.HasSuffix(synErr.Msg, "found EOF") || strings.HasSuffix(synErr.Msg, "found DEDENT")
}

func lastLine(text string) string {
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		return text[idx+1:]
	}
	return text
}
