package lisp

import "fmt"

// Pair is the cell referenced by an LCons value.  A list is a chain of pairs
// linked through Tail and terminated by LNil.  The same chains serve as data,
// as expressions and as environment binding lists.
type Pair struct {
	Head LVal
	Tail LVal
}

func pairVal(p *Pair) LVal {
	return LVal{
		Tag:    LCons,
		Native: p,
	}
}

// Cons returns a new pair holding head and tail.
// 	(cons head tail)
func Cons(head, tail LVal) LVal {
	return pairVal(&Pair{Head: head, Tail: tail})
}

// EmptyExpr returns an LCons value without a cell.  It is the empty list in
// expression position and cannot be evaluated.
func EmptyExpr() LVal {
	return pairVal(nil)
}

// List returns a proper list of v.
func List(v ...LVal) LVal {
	lis := Nil()
	for i := len(v) - 1; i >= 0; i-- {
		lis = Cons(v[i], lis)
	}
	return lis
}

// GetPair returns the cell of v.  The returned pointer is nil when v is an
// empty list.  GetPair returns false if v is not LCons.
func GetPair(v LVal) (*Pair, bool) {
	if v.Type() != LCons {
		return nil, false
	}
	p, _ := v.Native.(*Pair)
	return p, true
}

// MustPair returns the cell of v.  MustPair fails with
// ErrReferenceNotExpectedType if v is not LCons and with
// ErrListIndexOutOfRange if v has no cell.
func MustPair(v LVal) *Pair {
	RequireTag(v, LCons)
	p, _ := v.Native.(*Pair)
	if p == nil {
		Fatalf(ErrListIndexOutOfRange, "empty list has no cells")
	}
	return p
}

// IsEmptyExpr returns true if v is an LCons value without a cell.
func IsEmptyExpr(v LVal) bool {
	p, ok := GetPair(v)
	return ok && p == nil
}

// Head returns the first element of pair v.
func Head(v LVal) LVal {
	return MustPair(v).Head
}

// Tail returns the rest of pair v.
func Tail(v LVal) LVal {
	return MustPair(v).Tail
}

// next advances through a chain of pairs.  It returns nil at the end of the
// chain, including at an improper (non-pair) tail.
func next(v LVal) *Pair {
	p, _ := GetPair(v)
	return p
}

// Length counts the cells of list v by following tails until a value that is
// not a pair is reached.  Length of LNil and of an empty list is 0.
func Length(v LVal) int {
	n := 0
	for p := next(v); p != nil; p = next(p.Tail) {
		n++
	}
	return n
}

// Slice returns the elements of list v.  Slice returns an error if the chain
// ends in anything other than LNil, along with the elements preceding it.
func Slice(v LVal) ([]LVal, error) {
	var elems []LVal
	for {
		switch v.Type() {
		case LNil:
			return elems, nil
		case LCons:
			p := next(v)
			if p == nil {
				return elems, nil
			}
			elems = append(elems, p.Head)
			v = p.Tail
		default:
			return elems, fmt.Errorf("improper list ends in %v", v.Type())
		}
	}
}

func nthPair(v LVal, i int) *Pair {
	if i < 0 {
		Fatalf(ErrIllegalListIndex, "negative index: %d", i)
	}
	n := 0
	for p := next(v); p != nil; p = next(p.Tail) {
		if n == i {
			return p
		}
		n++
	}
	Fatalf(ErrListIndexOutOfRange, "index %d out of range for list of length %d", i, n)
	return nil
}

// Nth returns the element at 0-based index i of list v.  Nth fails if i is
// negative or not less than Length(v).
func Nth(v LVal, i int) LVal {
	return nthPair(v, i).Head
}

// SetNth replaces the element at 0-based index i of list v with elem.
func SetNth(v LVal, i int, elem LVal) {
	nthPair(v, i).Head = elem
}

// Append links list b to the end of list a and returns the combined list.
//
// Append is destructive.  The last cell of a is modified in place so every
// holder of a (or of any of its tails) observes the change.  Callers must own
// a exclusively.  If a is empty Append returns b.
func Append(a, b LVal) LVal {
	last := next(a)
	if last == nil {
		return b
	}
	if IsNil(b) || IsEmptyExpr(b) {
		return a
	}
	for p := next(last.Tail); p != nil; p = next(p.Tail) {
		last = p
	}
	last.Tail = b
	return a
}

// AssocFind scans association list lis for the first binding (name . value)
// whose key has the given name and returns the binding pair.  Assigning to
// the Tail of the result rebinds name in place.  AssocFind returns nil if no
// binding exists.
func AssocFind(lis LVal, name string) *Pair {
	for p := next(lis); p != nil; p = next(p.Tail) {
		binding := MustPair(p.Head)
		if keyName(binding.Head) == name {
			return binding
		}
	}
	return nil
}

// AssocLookup returns the value bound to name in association list lis.
func AssocLookup(lis LVal, name string) (LVal, bool) {
	binding := AssocFind(lis, name)
	if binding == nil {
		return Nil(), false
	}
	return binding.Tail, true
}

func keyName(key LVal) string {
	switch key.Type() {
	case LSymbol, LString:
		return key.Native.(string)
	default:
		Fatalf(ErrReferenceNotExpectedType, "association key is not a symbol: %v", key.Type())
		return ""
	}
}
