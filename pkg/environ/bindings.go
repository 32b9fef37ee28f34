package environ

import (
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/symbol"
)

// bindings is a set of variable bindings stored as an array of buckets.  Each
// bucket is LNil or an association list of (name . value) pairs.
type bindings struct {
	buckets []lisp.LVal
	n       int
}

func newBindings(nbuckets int) *bindings {
	if nbuckets < 1 {
		nbuckets = 1
	}
	return &bindings{
		buckets: make([]lisp.LVal, nbuckets),
	}
}

// Len returns the number of names bound.
func (s *bindings) Len() int {
	return s.n
}

func (s *bindings) bucket(h uint64) int {
	return symbol.Bucket(h, len(s.buckets))
}

// find returns the binding cell for name, or nil.
func (s *bindings) find(name string, h uint64) *lisp.Pair {
	lis := s.buckets[s.bucket(h)]
	if lisp.IsNil(lis) {
		return nil
	}
	return lisp.AssocFind(lis, name)
}

// put creates or updates a local binding for name.
func (s *bindings) put(name string, h uint64, v lisp.LVal) *lisp.Pair {
	if cell := s.find(name, h); cell != nil {
		cell.Tail = v
		return cell
	}
	return s.prepend(name, h, v)
}

// prepend pushes a new binding onto the front of name's bucket, shadowing any
// existing binding in the bucket.
func (s *bindings) prepend(name string, h uint64, v lisp.LVal) *lisp.Pair {
	i := s.bucket(h)
	binding := lisp.Cons(lisp.Make(lisp.LSymbol, h, name), v)
	s.buckets[i] = lisp.Cons(binding, s.buckets[i])
	s.n++
	return lisp.MustPair(binding)
}

func (s *bindings) clear() {
	for i := range s.buckets {
		s.buckets[i] = lisp.Nil()
	}
	s.n = 0
}
