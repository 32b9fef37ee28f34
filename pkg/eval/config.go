package eval

import (
	"fmt"
	"io"
)

// Option is a function that configures a new Evaluator.
type Option func(*Evaluator) error

// WithMaxArgs bounds the number of operands in an application.  The default
// is langproc.MaxArgs.
func WithMaxArgs(n int) Option {
	return func(e *Evaluator) error {
		if n <= 0 {
			return fmt.Errorf("invalid argument bound: %d", n)
		}
		e.MaxArgs = n
		return nil
	}
}

// WithTrace writes a line to w for every expression evaluated, recording the
// frame, the tail position flag and the expression.
func WithTrace(w io.Writer) Option {
	return func(e *Evaluator) error {
		e.Trace = w
		return nil
	}
}

// WithStderr redirects an evaluator's Stderr output stream to w instead of
// the default os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(e *Evaluator) error {
		if w == nil {
			return fmt.Errorf("nil stderr")
		}
		e.Stderr = w
		return nil
	}
}

// WithDumpEnv makes EvalAll dump the top level environment to Stderr after
// each expression.
func WithDumpEnv(dump bool) Option {
	return func(e *Evaluator) error {
		e.DumpEnv = dump
		return nil
	}
}
