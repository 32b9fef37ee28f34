package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/reader"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE ...",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied in files or, with -e, on the command line.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		programs, err := runReadPrograms(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		e, env, err := newInterpreter()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range programs {
			for _, expr := range programs[i] {
				// EvalAll reports fatal errors itself.
				v, err := e.EvalAll(env, []lisp.LVal{expr})
				if err != nil {
					os.Exit(1)
				}
				if runPrint {
					fmt.Println(lisp.FormatString(v))
				}
			}
		}
	},
}

// runReadPrograms parses every program before any of them is evaluated so
// that syntax errors are reported up front.
func runReadPrograms(args []string) ([][]lisp.LVal, error) {
	programs := make([][]lisp.LVal, len(args))
	for i := range args {
		var err error
		if runExpression {
			programs[i], err = reader.ReadString(fmt.Sprintf("arg%d", i), args[i])
		} else {
			programs[i], err = runReadFile(args[i])
		}
		if err != nil {
			return nil, err
		}
	}
	return programs, nil
}

func runReadFile(path string) ([]lisp.LVal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	exprs, err := reader.Read(path, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return exprs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
