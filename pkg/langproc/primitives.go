package langproc

import (
	"sort"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/environ"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
)

// NewGlobalEnviron creates a root environment with the language primitives
// installed.
func NewGlobalEnviron(opts ...environ.Option) *environ.Environ {
	env := environ.New(nil, opts...)
	Install(env)
	return env
}

// Install binds LangProcs and LangConstants in env.
func Install(env *environ.Environ) {
	// deterministic bucket order makes environment dumps stable
	for _, name := range sortedNames(LangProcs) {
		env.Define(name, LangProcs[name].LVal())
	}
	for _, name := range sortedNames(LangConstants) {
		env.Define(name, LangConstants[name])
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var LangConstants = map[string]lisp.LVal{
	"true":  lisp.True(),
	"false": lisp.False(),
}

var LangProcs = map[string]*Primitive{
	"+":       ProcAdd,
	"-":       ProcSub,
	"*":       ProcMul,
	"/":       ProcDiv,
	"=":       ProcEQ,
	"<":       ProcLT,
	">":       ProcGT,
	"cons":    ProcCons,
	"car":     ProcCAR,
	"cdr":     ProcCDR,
	"get-tag": ProcGetTag,
}

// fold applies op left to right over the unsigned arguments.  Overflow wraps.
func fold(op func(x, y uint64) uint64) ProcFunc {
	return func(args *Args) lisp.LVal {
		result := lisp.MustUint(args.Get(0))
		for i := 1; i < args.Len(); i++ {
			result = op(result, lisp.MustUint(args.Get(i)))
		}
		return lisp.Uint(result)
	}
}

// (+ 1 2) => 3 or (+ 1 2 3) => 6
var ProcAdd = NewPrimitive("+", 1, Variadic,
	"Returns the sum of its arguments.",
	fold(func(x, y uint64) uint64 { return x + y }),
)

// (- 10 4) => 6
var ProcSub = NewPrimitive("-", 1, Variadic,
	"Subtracts the remaining arguments from the first.",
	fold(func(x, y uint64) uint64 { return x - y }),
)

// (* 10 4) => 40
var ProcMul = NewPrimitive("*", 1, Variadic,
	"Returns the product of its arguments.",
	fold(func(x, y uint64) uint64 { return x * y }),
)

// (/ 10 2) => 5
var ProcDiv = NewPrimitive("/", 2, 2,
	"Divides x by y, truncating.",
	func(args *Args) lisp.LVal {
		x := lisp.MustUint(args.Get(0))
		y := lisp.MustUint(args.Get(1))
		if y == 0 {
			lisp.Fatalf(lisp.ErrUnknown, "division by zero")
		}
		return lisp.Uint(x / y)
	},
)

func compare(name string, cmp func(x, y uint64) bool) *Primitive {
	return NewPrimitive(name, 2, 2,
		"Compares unsigned integers x and y.",
		func(args *Args) lisp.LVal {
			x := lisp.MustUint(args.Get(0))
			y := lisp.MustUint(args.Get(1))
			return lisp.Bool(cmp(x, y))
		},
	)
}

var ProcEQ = compare("=", func(x, y uint64) bool { return x == y })
var ProcLT = compare("<", func(x, y uint64) bool { return x < y })
var ProcGT = compare(">", func(x, y uint64) bool { return x > y })

var ProcCons = NewPrimitive("cons", 2, 2,
	"Returns a pair containing head and tail.",
	func(args *Args) lisp.LVal {
		return lisp.Cons(args.Get(0), args.Get(1))
	},
)

var ProcCAR = NewPrimitive("car", 1, 1,
	"Returns the head of pair p.",
	func(args *Args) lisp.LVal {
		return lisp.Head(args.Get(0))
	},
)

var ProcCDR = NewPrimitive("cdr", 1, 1,
	"Returns the tail of pair p.",
	func(args *Args) lisp.LVal {
		return lisp.Tail(args.Get(0))
	},
)

// ProcGetTag returns the type tag number of a value.  It lets predicates like
// pair? be written in lisp.
var ProcGetTag = NewPrimitive("get-tag", 1, 1,
	"Returns the type tag number of v.",
	func(args *Args) lisp.LVal {
		return lisp.Uint(uint64(args.Get(0).Type()))
	},
)
