package langproc

import (
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/environ"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
)

// MaxArgs is the default bound on the number of arguments in a procedure
// call.
const MaxArgs = 16

// Args is a bounded list of positional procedure arguments.
type Args struct {
	vals []lisp.LVal
	max  int
}

// NewArgs returns an empty argument list holding at most max values.  A
// non-positive max uses MaxArgs.
func NewArgs(max int) *Args {
	if max <= 0 {
		max = MaxArgs
	}
	return &Args{max: max}
}

// ArgsOf returns an argument list containing v.
func ArgsOf(v ...lisp.LVal) *Args {
	args := NewArgs(len(v))
	for i := range v {
		args.Push(v[i])
	}
	return args
}

// Len returns the number of arguments.
func (args *Args) Len() int {
	return len(args.vals)
}

// Max returns the capacity of args.
func (args *Args) Max() int {
	return args.max
}

// Get returns the argument at index i.
func (args *Args) Get(i int) lisp.LVal {
	if i < 0 || i >= len(args.vals) {
		lisp.Fatalf(lisp.ErrWrongNumberOfArgs, "argument %d requested from %d arguments", i, len(args.vals))
	}
	return args.vals[i]
}

// Push appends v.  Push fails with lisp.ErrMaxPrimitiveArgs when args is
// full.
func (args *Args) Push(v lisp.LVal) {
	if len(args.vals) >= args.max {
		lisp.Fatalf(lisp.ErrMaxPrimitiveArgs, "more than %d arguments", args.max)
	}
	args.vals = append(args.vals, v)
}

// ProcFunc implements a primitive lisp procedure.  Arguments are accessed by
// position.
//		func(args *langproc.Args) lisp.LVal {
//			x := args.Get(0) // first arg
//			y := args.Get(1) // second arg
//			// ...
//		}
type ProcFunc func(args *Args) lisp.LVal

// Variadic is used as the maximum arity of a primitive that accepts any
// number of arguments (up to the call's argument bound).
const Variadic = -1

// Primitive is a callable lisp procedure implemented as a go function.
type Primitive struct {
	name    string
	docs    string
	minArgs int
	maxArgs int
	fn      ProcFunc
}

// NewPrimitive creates a primitive procedure accepting between minArgs and
// maxArgs arguments.  Pass Variadic as maxArgs for no upper bound.
func NewPrimitive(name string, minArgs, maxArgs int, docs string, fn ProcFunc) *Primitive {
	return &Primitive{
		name:    name,
		docs:    docs,
		minArgs: minArgs,
		maxArgs: maxArgs,
		fn:      fn,
	}
}

// Name returns the name the primitive is installed under.
func (proc *Primitive) Name() string {
	return proc.name
}

// DebugName implements lisp.DebugNamer.
func (proc *Primitive) DebugName() string {
	return proc.name
}

// Documentation is optional procedure documentation.
func (proc *Primitive) Documentation() string {
	return proc.docs
}

// Apply calls the procedure with args.  Apply fails with
// lisp.ErrWrongNumberOfArgs if the number of arguments is not accepted.
func (proc *Primitive) Apply(args *Args) lisp.LVal {
	n := args.Len()
	if n < proc.minArgs || (proc.maxArgs != Variadic && n > proc.maxArgs) {
		lisp.Fatalf(lisp.ErrWrongNumberOfArgs, "%s: %d arguments", proc.name, n)
	}
	return proc.fn(args)
}

// LVal wraps proc as an LPrimitive value.
func (proc *Primitive) LVal() lisp.LVal {
	return lisp.Make(lisp.LPrimitive, 0, proc)
}

// GetPrimitive extracts a Primitive from v.  GetPrimitive returns false if v
// is not LPrimitive.
func GetPrimitive(v lisp.LVal) (*Primitive, bool) {
	if v.Type() != lisp.LPrimitive {
		return nil, false
	}
	p, ok := v.Native.(*Primitive)
	return p, ok
}

// MustPrimitive extracts a Primitive from v and fails if v is not
// LPrimitive.
func MustPrimitive(v lisp.LVal) *Primitive {
	p, ok := lisp.RequireNative(v, lisp.LPrimitive).(*Primitive)
	if !ok {
		lisp.Fatalf(lisp.ErrReferenceNotExpectedType, "primitive value has native type %T", v.Native)
	}
	return p
}

// Closure is a procedure created by evaluating a lambda expression.  A
// Closure owns its environment, which can then never be released.
type Closure struct {
	name   string
	params []string
	body   lisp.LVal
	env    *environ.Environ
}

// NewClosure creates a closure with formal parameters params (a list of
// symbols) and a list of body expressions, closing over env.  env is captured.
func NewClosure(params lisp.LVal, body lisp.LVal, env *environ.Environ) *Closure {
	syms, err := lisp.Slice(params)
	if err != nil {
		lisp.Fatalf(lisp.ErrReferenceNotExpectedType, "formal arguments: %v", err)
	}
	names := make([]string, len(syms))
	for i := range syms {
		names[i] = lisp.MustSymbol(syms[i])
	}
	env.Capture()
	return &Closure{
		params: names,
		body:   body,
		env:    env,
	}
}

// Params returns the formal parameter names.  The returned slice must not be
// modified.
func (proc *Closure) Params() []string {
	return proc.params
}

// Arity returns the number of arguments the closure requires.
func (proc *Closure) Arity() int {
	return len(proc.params)
}

// Body returns the list of body expressions.
func (proc *Closure) Body() lisp.LVal {
	return proc.body
}

// Environ returns the captured environment.
func (proc *Closure) Environ() *environ.Environ {
	return proc.env
}

// DebugName implements lisp.DebugNamer.
func (proc *Closure) DebugName() string {
	return proc.name
}

// SetDebugName labels an unnamed closure.  A closure keeps the first name it
// is given.
func (proc *Closure) SetDebugName(name string) {
	if proc.name == "" {
		proc.name = name
	}
}

// LVal wraps proc as an LClosure value.
func (proc *Closure) LVal() lisp.LVal {
	return lisp.Make(lisp.LClosure, 0, proc)
}

// GetClosure extracts a Closure from v.  GetClosure returns false if v is not
// LClosure.
func GetClosure(v lisp.LVal) (*Closure, bool) {
	if v.Type() != lisp.LClosure {
		return nil, false
	}
	proc, ok := v.Native.(*Closure)
	return proc, ok
}

// MustClosure extracts a Closure from v and fails if v is not LClosure.
func MustClosure(v lisp.LVal) *Closure {
	proc, ok := lisp.RequireNative(v, lisp.LClosure).(*Closure)
	if !ok {
		lisp.Fatalf(lisp.ErrReferenceNotExpectedType, "closure value has native type %T", v.Native)
	}
	return proc
}
