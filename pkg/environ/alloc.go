package environ

import "github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"

// Allocator accounts for the lifetime of environment frames.  Alloc is called
// when a frame is created and Free when it is released.  Frames that are
// captured by a closure are never freed.
type Allocator interface {
	Alloc(env *Environ)
	Free(env *Environ)
}

// Counter is an Allocator that counts frame allocations and releases.  A
// Counter with a non-zero limit fails with lisp.ErrMemoryAllocation when a
// frame would exceed limit live frames.
type Counter struct {
	allocs uint64
	frees  uint64
	limit  uint64
}

var _ Allocator = (*Counter)(nil)

// NewCounter returns a Counter allowing at most limit live frames.  A limit of
// zero is unlimited.
func NewCounter(limit uint64) *Counter {
	return &Counter{limit: limit}
}

// Alloc implements Allocator.
func (c *Counter) Alloc(env *Environ) {
	if c.limit > 0 && c.Live() >= c.limit {
		lisp.Fatalf(lisp.ErrMemoryAllocation, "live frame limit reached: %d", c.limit)
	}
	c.allocs++
}

// Free implements Allocator.
func (c *Counter) Free(env *Environ) {
	c.frees++
}

// Allocs returns the number of frames allocated.
func (c *Counter) Allocs() uint64 {
	return c.allocs
}

// Frees returns the number of frames released.
func (c *Counter) Frees() uint64 {
	return c.frees
}

// Live returns the number of frames allocated and not released, including
// frames kept alive by closures.
func (c *Counter) Live() uint64 {
	return c.allocs - c.frees
}
