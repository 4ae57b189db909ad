package cmd

import (
	"github.com/spf13/cobra"

	"abrvalg/interpreter-go/pkg/driver"
	"abrvalg/interpreter-go/pkg/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Starts the read-eval-print loop. Bindings persist across lines,
indented blocks are closed with a blank line, Ctrl+C abandons the
current input and Ctrl+D exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return repl.New(driver.New(cfg), cfg).Run()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
