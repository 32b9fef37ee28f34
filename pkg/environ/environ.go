package environ

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/symbol"
)

const (
	// GlobalBuckets is the default bucket count of a root environment, which
	// holds many more names than a nested one.
	GlobalBuckets = 73
	// NestedBuckets is the default bucket count of a child environment.  A
	// single bucket avoids hashing for small argument lists.
	NestedBuckets = 1
)

// DefinePolicy selects how Define treats a name that is already bound in an
// enclosing environment.
type DefinePolicy int

const (
	// DefineSearchChain updates the nearest existing binding anywhere in the
	// environment chain and only creates a local binding when the name is
	// unbound.  A define in a nested scope can therefore rebind a global.
	DefineSearchChain DefinePolicy = iota
	// DefineShadowLocal always creates or updates a binding in the local
	// environment.
	DefineShadowLocal
)

func (p DefinePolicy) String() string {
	switch p {
	case DefineSearchChain:
		return "search"
	case DefineShadowLocal:
		return "local"
	default:
		return fmt.Sprintf("DefinePolicy(%d)", int(p))
	}
}

// ParseDefinePolicy parses the String form of a DefinePolicy.
func ParseDefinePolicy(s string) (DefinePolicy, error) {
	switch s {
	case "search":
		return DefineSearchChain, nil
	case "local":
		return DefineShadowLocal, nil
	default:
		return 0, fmt.Errorf("unknown define policy: %q", s)
	}
}

var envCount uint64

func nextEnvID() uint64 {
	return atomic.AddUint64(&envCount, 1)
}

// Environ is a lexical environment frame.  Environ contains local symbol
// bindings and a parent environment.  Environ is in the scope of its parent's
// bindings.
//
// Frames are released explicitly rather than left to the garbage collector.
// Once released a frame's bindings are dropped and any further use is a fatal
// lisp.ErrNotReached.  A frame captured by a closure is never released.
type Environ struct {
	id       uint64
	parent   *Environ
	captured bool
	released bool
	bindings *bindings
	alloc    Allocator
	policy   DefinePolicy
}

type config struct {
	nbuckets int
	alloc    Allocator
	policy   *DefinePolicy
}

// Option configures a new Environ.
type Option func(*config)

// WithBuckets sets the number of hash buckets in a new environment.
func WithBuckets(n int) Option {
	return func(c *config) {
		c.nbuckets = n
	}
}

// WithAllocator makes a new environment, and the environments nested inside
// it, account for their lifetimes with a.
func WithAllocator(a Allocator) Option {
	return func(c *config) {
		c.alloc = a
	}
}

// WithDefinePolicy sets the DefinePolicy of a new environment and the
// environments nested inside it.
func WithDefinePolicy(p DefinePolicy) Option {
	return func(c *config) {
		c.policy = &p
	}
}

// New returns a new environment.  If parent is nil a root Environ will be
// returned.  A child inherits its parent's Allocator and DefinePolicy unless
// overridden by opts.
func New(parent *Environ, opts ...Option) *Environ {
	c := &config{}
	for _, fn := range opts {
		fn(c)
	}
	env := &Environ{
		id:     nextEnvID(),
		parent: parent,
	}
	if parent != nil {
		parent.mustLive()
		env.alloc = parent.alloc
		env.policy = parent.policy
	}
	if c.alloc != nil {
		env.alloc = c.alloc
	}
	if env.alloc == nil {
		env.alloc = NewCounter(0)
	}
	if c.policy != nil {
		env.policy = *c.policy
	}
	nbuckets := c.nbuckets
	if nbuckets <= 0 {
		nbuckets = NestedBuckets
		if parent == nil {
			nbuckets = GlobalBuckets
		}
	}
	env.alloc.Alloc(env)
	env.bindings = newBindings(nbuckets)
	return env
}

// ID returns a process-unique identifier for env.
func (env *Environ) ID() uint64 {
	return env.id
}

func (env *Environ) Parent() *Environ {
	return env.parent
}

func (env *Environ) Root() *Environ {
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Allocator returns the Allocator accounting for env.
func (env *Environ) Allocator() Allocator {
	return env.alloc
}

// Policy returns the DefinePolicy used by env.Define.
func (env *Environ) Policy() DefinePolicy {
	return env.policy
}

// Buckets returns the number of hash buckets in env.
func (env *Environ) Buckets() int {
	return len(env.bindings.buckets)
}

// Len returns the number of local bindings in env.
func (env *Environ) Len() int {
	return env.bindings.Len()
}

// IsCaptured returns true if a closure holds a reference to env.
func (env *Environ) IsCaptured() bool {
	return env.captured
}

// IsReleased returns true if env has been released.
func (env *Environ) IsReleased() bool {
	return env.released
}

func (env *Environ) mustLive() {
	if env.released {
		lisp.Fatalf(lisp.ErrNotReached, "use of released environment %d", env.id)
	}
}

// FindBinding returns the binding pair (name . value) for name in env or the
// nearest ancestor that binds it.  The Tail of the returned pair may be
// modified to rebind the variable in place.  FindBinding returns nil if name
// is unbound.
func (env *Environ) FindBinding(name string) *lisp.Pair {
	return env.findBinding(name, symbol.Hash(name))
}

func (env *Environ) findBinding(name string, h uint64) *lisp.Pair {
	for ; env != nil; env = env.parent {
		env.mustLive()
		if cell := env.bindings.find(name, h); cell != nil {
			return cell
		}
	}
	return nil
}

// Get returns the value bound to name.
func (env *Environ) Get(name string) (lisp.LVal, bool) {
	cell := env.FindBinding(name)
	if cell == nil {
		return lisp.Nil(), false
	}
	return cell.Tail, true
}

// Lookup returns the value bound to the LSymbol sym, using the hash code sym
// carries.
func (env *Environ) Lookup(sym lisp.LVal) (lisp.LVal, bool) {
	name := lisp.MustSymbol(sym)
	cell := env.findBinding(name, sym.Data)
	if cell == nil {
		return lisp.Nil(), false
	}
	return cell.Tail, true
}

// Set rebinds the variable name to v in the nearest environment that binds
// it.  Set fails with lisp.ErrVariableNotFound if name is unbound; it never
// creates a binding.
func (env *Environ) Set(name string, v lisp.LVal) {
	cell := env.FindBinding(name)
	if cell == nil {
		lisp.Fatalf(lisp.ErrVariableNotFound, "%s", name)
	}
	cell.Tail = v
}

// Define binds name to v according to env's DefinePolicy.  See
// DefineSearchChain and DefineShadowLocal.
func (env *Environ) Define(name string, v lisp.LVal) {
	env.mustLive()
	h := symbol.Hash(name)
	switch env.policy {
	case DefineShadowLocal:
		env.bindings.put(name, h, v)
	default:
		if cell := env.findBinding(name, h); cell != nil {
			cell.Tail = v
			return
		}
		env.bindings.prepend(name, h, v)
	}
	if env.bindings.find(name, h) == nil {
		lisp.Fatalf(lisp.ErrUnknown, "binding for %s vanished after define", name)
	}
}

// Bind creates or updates a binding for name in env itself, regardless of
// env's DefinePolicy.
func (env *Environ) Bind(name string, v lisp.LVal) {
	env.mustLive()
	env.bindings.put(name, symbol.Hash(name), v)
}

// Capture marks env and its ancestors as referenced by a closure.  Captured
// environments are never released.
func (env *Environ) Capture() {
	for ; env != nil && !env.captured; env = env.parent {
		env.mustLive()
		env.captured = true
	}
}

// Releasable returns true if env may be released: it is not a root, has not
// been captured and has not already been released.
func (env *Environ) Releasable() bool {
	return env.parent != nil && !env.captured && !env.released
}

// Release drops env's bindings and reports the release to its Allocator.
// Release fails with lisp.ErrNotReached if env is not Releasable.
func (env *Environ) Release() {
	switch {
	case env.released:
		lisp.Fatalf(lisp.ErrNotReached, "environment %d released twice", env.id)
	case env.captured:
		lisp.Fatalf(lisp.ErrNotReached, "captured environment %d released", env.id)
	case env.parent == nil:
		lisp.Fatalf(lisp.ErrNotReached, "root environment %d released", env.id)
	}
	env.released = true
	env.bindings.clear()
	env.alloc.Free(env)
}

// ReleaseIfUnowned releases env if it is Releasable and reports whether it
// did so.
func (env *Environ) ReleaseIfUnowned() bool {
	if !env.Releasable() {
		return false
	}
	env.Release()
	return true
}

// Dump writes the non-empty buckets of env to w for debugging.
func (env *Environ) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w, "ENVIRONMENT %d (buckets=%d captured=%t released=%t)\n",
		env.id, env.Buckets(), env.captured, env.released)
	if err != nil {
		return err
	}
	for i, lis := range env.bindings.buckets {
		if lisp.IsNil(lis) {
			continue
		}
		_, err = fmt.Fprintf(w, "BUCKET %d - %s\n", i, lisp.FormatString(lis))
		if err != nil {
			return err
		}
	}
	return nil
}
