package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/environ"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/langproc"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/symbol"
)

// Names of the special forms recognized by the evaluator.
const (
	FormIf      = "if"
	FormSetBang = "set!"
	FormQuote   = "quote"
	FormLambda  = "lambda"
	FormDefine  = "define"
)

var (
	hashIf      = symbol.Hash(FormIf)
	hashSetBang = symbol.Hash(FormSetBang)
	hashQuote   = symbol.Hash(FormQuote)
	hashLambda  = symbol.Hash(FormLambda)
	hashDefine  = symbol.Hash(FormDefine)
)

// Evaluator interprets expression trees against environment frames.  An
// Evaluator holds configuration only; all interpreter state lives in the
// frames passed to Eval.  Evaluator is not safe for concurrent use with
// shared frames.
//
// MaxArgs bounds the number of operands in an application.  Trace, when
// non-nil, receives a line per evaluated expression.  Stderr receives the
// diagnostics and environment dumps written by EvalAll.
type Evaluator struct {
	MaxArgs int
	Trace   io.Writer
	Stderr  io.Writer
	DumpEnv bool
}

// New initializes and returns a new Evaluator with the provided configuration
// options.  If any error is encountered it will be returned with a nil
// Evaluator.
func New(options ...Option) (*Evaluator, error) {
	e := &Evaluator{
		MaxArgs: langproc.MaxArgs,
		Stderr:  os.Stderr,
	}
	for _, fn := range options {
		err := fn(e)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

var defaultEvaluator = &Evaluator{
	MaxArgs: langproc.MaxArgs,
	Stderr:  os.Stderr,
}

// Eval evaluates expr in env using the default configuration.  See
// (*Evaluator).Eval.
func Eval(env *environ.Environ, expr lisp.LVal, tail bool) lisp.LVal {
	return defaultEvaluator.Eval(env, expr, tail)
}

// EvalAll evaluates each of exprs in env, in order and not in tail position,
// and returns the value of the last one.  A fatal interpreter error stops
// evaluation; it is reported on e.Stderr and returned.
func (e *Evaluator) EvalAll(env *environ.Environ, exprs []lisp.LVal) (lisp.LVal, error) {
	result := lisp.Nil()
	for i := range exprs {
		var v lisp.LVal
		ferr := lisp.Catch(func() {
			v = e.Eval(env, exprs[i], false)
		})
		if ferr != nil {
			fmt.Fprintln(e.Stderr, ferr)
			return lisp.Nil(), ferr
		}
		result = v
		if e.DumpEnv {
			err := env.Dump(e.Stderr)
			if err != nil {
				return lisp.Nil(), fmt.Errorf("dump environment: %w", err)
			}
		}
	}
	return result, nil
}

// Eval evaluates expr in env and returns the result.  When tail is true expr
// is in tail position: its value is the result of the enclosing evaluation
// and env is released as soon as that value is known, unless a closure has
// captured it.
//
// Errors are fatal.  Eval panics with a *lisp.FatalError; see lisp.Catch.
func (e *Evaluator) Eval(env *environ.Environ, expr lisp.LVal, tail bool) lisp.LVal {
	if e.Trace != nil {
		fmt.Fprintf(e.Trace, "eval env=%d tail=%t %s\n", env.ID(), tail, lisp.FormatString(expr))
	}
	switch expr.Type() {
	case lisp.LSymbol:
		v, ok := env.Lookup(expr)
		if !ok {
			lisp.Fatalf(lisp.ErrVariableNotFound, "%s", lisp.MustSymbol(expr))
		}
		return e.done(env, tail, v)
	case lisp.LCons:
		// handled below
	default:
		return e.done(env, tail, expr)
	}

	if lisp.IsEmptyExpr(expr) {
		lisp.Fatal(lisp.ErrCantEvalEmptyExpression)
	}
	head := lisp.Head(expr)
	if head.Type() == lisp.LSymbol {
		name := lisp.MustSymbol(head)
		switch head.Data {
		case hashIf:
			if name == FormIf {
				return e.evalIf(env, expr, tail)
			}
		case hashSetBang:
			if name == FormSetBang {
				return e.evalSet(env, expr, tail)
			}
		case hashQuote:
			if name == FormQuote {
				return e.done(env, tail, lisp.Nth(expr, 1))
			}
		case hashLambda:
			if name == FormLambda {
				return e.evalLambda(env, expr)
			}
		case hashDefine:
			if name == FormDefine {
				return e.evalDefine(env, expr, tail)
			}
		}
	}
	return e.evalApplication(env, expr, tail)
}

// done completes an evaluation producing v, releasing env when v is the
// result of a tail expression.
func (e *Evaluator) done(env *environ.Environ, tail bool, v lisp.LVal) lisp.LVal {
	if tail {
		e.release(env)
	}
	return v
}

func (e *Evaluator) release(env *environ.Environ) {
	if env.ReleaseIfUnowned() && e.Trace != nil {
		fmt.Fprintf(e.Trace, "release env=%d\n", env.ID())
	}
}

// (if test consequent [alternative])
func (e *Evaluator) evalIf(env *environ.Environ, expr lisp.LVal, tail bool) lisp.LVal {
	test := lisp.Nth(expr, 1)
	consequent := lisp.Nth(expr, 2)
	if lisp.IsFalse(e.Eval(env, test, false)) {
		if lisp.Length(expr) < 4 {
			return e.done(env, tail, lisp.Nil())
		}
		return e.Eval(env, lisp.Nth(expr, 3), tail)
	}
	return e.Eval(env, consequent, tail)
}

// (set! name expr)
func (e *Evaluator) evalSet(env *environ.Environ, expr lisp.LVal, tail bool) lisp.LVal {
	name := lisp.MustSymbol(lisp.Nth(expr, 1))
	v := e.Eval(env, lisp.Nth(expr, 2), false)
	env.Set(name, v)
	return e.done(env, tail, lisp.Nil())
}

// (lambda (params...) body...)
//
// A lambda never releases env, it captures it.
func (e *Evaluator) evalLambda(env *environ.Environ, expr lisp.LVal) lisp.LVal {
	params := lisp.Nth(expr, 1)
	body := lisp.Tail(lisp.Tail(expr))
	return langproc.NewClosure(params, body, env).LVal()
}

// (define name expr)
func (e *Evaluator) evalDefine(env *environ.Environ, expr lisp.LVal, tail bool) lisp.LVal {
	name := lisp.MustSymbol(lisp.Nth(expr, 1))
	v := e.Eval(env, lisp.Nth(expr, 2), false)
	if proc, ok := langproc.GetClosure(v); ok {
		proc.SetDebugName(name)
	}
	env.Define(name, v)
	return e.done(env, tail, lisp.Nil())
}

func (e *Evaluator) evalApplication(env *environ.Environ, expr lisp.LVal, tail bool) lisp.LVal {
	if n := lisp.Length(expr) - 1; n > e.MaxArgs {
		lisp.Fatalf(lisp.ErrMaxPrimitiveArgs, "%d arguments exceeds the limit of %d", n, e.MaxArgs)
	}
	operands, err := lisp.Slice(lisp.Tail(expr))
	if err != nil {
		lisp.Fatalf(lisp.ErrReferenceNotExpectedType, "application: %v", err)
	}
	fn := e.Eval(env, lisp.Head(expr), false)
	args := langproc.NewArgs(e.MaxArgs)
	for _, operand := range operands {
		args.Push(e.Eval(env, operand, false))
	}

	// Every value env contributes is computed, so a frame in tail position
	// is released before control transfers to the callee.
	if tail {
		e.release(env)
	}

	switch fn.Type() {
	case lisp.LPrimitive:
		return langproc.MustPrimitive(fn).Apply(args)
	case lisp.LClosure:
		return e.applyClosure(langproc.MustClosure(fn), args, tail)
	default:
		lisp.Fatalf(lisp.ErrReferenceNotExpectedType, "not a procedure: %s", lisp.FormatString(fn))
		return lisp.Nil()
	}
}

func (e *Evaluator) applyClosure(proc *langproc.Closure, args *langproc.Args, tail bool) lisp.LVal {
	params := proc.Params()
	if args.Len() != len(params) {
		lisp.Fatalf(lisp.ErrWrongNumberOfArgs, "%s: expected %d arguments, got %d",
			closureName(proc), len(params), args.Len())
	}
	body, err := lisp.Slice(proc.Body())
	if err != nil {
		lisp.Fatalf(lisp.ErrReferenceNotExpectedType, "closure body: %v", err)
	}
	if len(body) == 0 {
		lisp.Fatalf(lisp.ErrClosureHasNoBody, "%s", closureName(proc))
	}

	frame := environ.New(proc.Environ())
	for i, name := range params {
		frame.Bind(name, args.Get(i))
	}
	if e.Trace != nil {
		fmt.Fprintf(e.Trace, "call %s env=%d\n", closureName(proc), frame.ID())
	}

	last := len(body) - 1
	for _, expr := range body[:last] {
		e.Eval(frame, expr, false)
	}
	result := e.Eval(frame, body[last], tail)
	// A frame that reached the end of its body without being captured has no
	// remaining references.
	e.release(frame)
	return result
}

func closureName(proc *langproc.Closure) string {
	if name := proc.DebugName(); name != "" {
		return name
	}
	return "#<closure>"
}
