package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/environ"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/eval"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/langproc"
)

var (
	rootTrace     bool
	rootMaxArgs   int
	rootDefine    string
	rootMaxFrames uint64
	rootDumpEnv   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "armyknife-scheme",
	Short: "A tree-walking interpreter for a tiny scheme",
	Long: `A tree-walking interpreter for a tiny subset of scheme supporting if,
set!, quote, lambda, define and primitive procedures over unsigned integers.

Evaluation frames are released as soon as they are no longer needed rather
than collected.  Frames captured by closures live until the process exits.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newInterpreter builds an evaluator and a global environment from the
// command line flags.
func newInterpreter() (*eval.Evaluator, *environ.Environ, error) {
	policy, err := environ.ParseDefinePolicy(rootDefine)
	if err != nil {
		return nil, nil, err
	}
	opts := []eval.Option{
		eval.WithMaxArgs(rootMaxArgs),
		eval.WithStderr(os.Stderr),
		eval.WithDumpEnv(rootDumpEnv),
	}
	if rootTrace {
		opts = append(opts, eval.WithTrace(os.Stderr))
	}
	e, err := eval.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	env := langproc.NewGlobalEnviron(
		environ.WithAllocator(environ.NewCounter(rootMaxFrames)),
		environ.WithDefinePolicy(policy),
	)
	return e, env, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Trace each evaluation and frame release to stderr")
	rootCmd.PersistentFlags().IntVar(&rootMaxArgs, "max-args", langproc.MaxArgs,
		"Maximum number of arguments in a procedure call")
	rootCmd.PersistentFlags().StringVar(&rootDefine, "define", environ.DefineSearchChain.String(),
		"Define policy: search (update the nearest binding) or local (always bind locally)")
	rootCmd.PersistentFlags().Uint64Var(&rootMaxFrames, "max-frames", 0,
		"Maximum number of live environment frames (0 is unlimited)")
	rootCmd.PersistentFlags().BoolVar(&rootDumpEnv, "dump-env", false,
		"Dump the global environment to stderr after each top level expression")
}
