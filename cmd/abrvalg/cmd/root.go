package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/driver"
	"abrvalg/interpreter-go/pkg/repl"
	"abrvalg/interpreter-go/pkg/runtime"
)

var (
	cfgFile     string
	noColor     bool
	printTokens bool
	printAST    bool
)

// errReported marks failures whose full report already went to stderr,
// so Execute does not print them a second time.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "abrvalg [script.abr]",
	Short: "The Abrvalg programming language",
	Long: `Abrvalg is a small dynamically typed language with Python-like
syntax: indentation-delimited blocks, first-class functions with
closures, lists, maps and ranges.

With a script argument the file runs to completion; without one an
interactive session starts.

Examples:
  abrvalg fizzbuzz.abr
  abrvalg --print-ast fizzbuzz.abr
  abrvalg`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/abrvalg/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored error reports")
	rootCmd.Flags().BoolVar(&printTokens, "print-tokens", false, "print the token stream instead of evaluating")
	rootCmd.Flags().BoolVar(&printAST, "print-ast", false, "print the syntax tree instead of evaluating")
}

func loadConfig() (*driver.Config, error) {
	cfg, err := driver.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if noColor {
		cfg.Colors = false
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return repl.New(driver.New(cfg), cfg).Run()
	}
	return runScript(cfg, args[0])
}

func runScript(cfg *driver.Config, path string) error {
	src, err := driver.ReadFile(path)
	if err != nil {
		return err
	}
	d := driver.New(cfg)
	switch {
	case printTokens:
		return dumpTokens(d, src)
	case printAST:
		return dumpAST(d, src)
	}
	value, err := d.Run(src)
	if err != nil {
		fmt.Fprint(os.Stderr, d.RenderError(err, src))
		return errReported
	}
	// Scripts echo their final value the way the REPL does, except that
	// none stays silent and strings print unquoted.
	if _, isNone := value.(runtime.NoneValue); !isNone {
		fmt.Println(runtime.Display(value))
	}
	return nil
}

func dumpTokens(d *driver.Driver, src driver.Source) error {
	tokens, err := driver.Tokens(src)
	if err != nil {
		fmt.Fprint(os.Stderr, d.RenderError(err, src))
		return errReported
	}
	for _, tok := range tokens {
		fmt.Printf("%4d:%-3d %s\n", tok.Pos.Line, tok.Pos.Column, tok)
	}
	return nil
}

func dumpAST(d *driver.Driver, src driver.Source) error {
	program, err := driver.Compile(src)
	if err != nil {
		fmt.Fprint(os.Stderr, d.RenderError(err, src))
		return errReported
	}
	fmt.Print(ast.Dump(program))
	return nil
}
