package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jasonaaronwilson/armyknife-scheme/repl"
)

var replPrompt string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e, env, err := newInterpreter()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = repl.RunRepl(replPrompt, e, env)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", "]=> ",
		"The prompt displayed while waiting for input")
}
