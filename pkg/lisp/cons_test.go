package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uints(xs ...uint64) LVal {
	v := make([]LVal, len(xs))
	for i := range xs {
		v[i] = Uint(xs[i])
	}
	return List(v...)
}

func TestLength(t *testing.T) {
	tests := []struct {
		name string
		list LVal
		n    int
	}{
		{"nil", Nil(), 0},
		{"empty", EmptyExpr(), 0},
		{"one", uints(1), 1},
		{"three", uints(1, 2, 3), 3},
		{"improper", Cons(Uint(1), Cons(Uint(2), Uint(3))), 2},
		{"atom", Uint(7), 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.n, Length(test.list), test.name)
	}
}

func TestNth(t *testing.T) {
	lis := uints(10, 20, 30)
	for i := 0; i < Length(lis); i++ {
		assert.Equal(t, uint64(10*(i+1)), MustUint(Nth(lis, i)))
	}
	requireFatal(t, ErrListIndexOutOfRange, func() { Nth(lis, 3) })
	requireFatal(t, ErrIllegalListIndex, func() { Nth(lis, -1) })
	requireFatal(t, ErrListIndexOutOfRange, func() { Nth(Nil(), 0) })
	requireFatal(t, ErrListIndexOutOfRange, func() { Nth(EmptyExpr(), 0) })
}

func TestSetNth(t *testing.T) {
	lis := uints(1, 2, 3)
	SetNth(lis, 1, String("two"))
	assert.Equal(t, `(1 "two" 3)`, FormatString(lis))
	requireFatal(t, ErrListIndexOutOfRange, func() { SetNth(lis, 3, Nil()) })
}

func TestAppend(t *testing.T) {
	l := uints(1, 2)
	assert.True(t, Equal(l, Append(Nil(), l)))
	assert.True(t, Equal(l, Append(EmptyExpr(), l)))
	assert.True(t, Equal(l, Append(l, Nil())))
	assert.True(t, Equal(l, Append(l, EmptyExpr())))

	a := uints(1, 2)
	b := uints(3, 4)
	ab := Append(a, b)
	assert.True(t, Equal(uints(1, 2, 3, 4), ab))
	// the first list is extended in place
	assert.Equal(t, 4, Length(a))
	assert.Equal(t, "(1 2 3 4)", FormatString(a))
}

func TestAssoc(t *testing.T) {
	alist := List(
		Cons(Symbol("x"), Uint(1)),
		Cons(Symbol("y"), Uint(2)),
		Cons(Symbol("x"), Uint(3)),
	)
	v, ok := AssocLookup(alist, "x")
	require.True(t, ok)
	assert.Equal(t, uint64(1), MustUint(v))
	v, ok = AssocLookup(alist, "y")
	require.True(t, ok)
	assert.Equal(t, uint64(2), MustUint(v))
	_, ok = AssocLookup(alist, "z")
	assert.False(t, ok)
	_, ok = AssocLookup(Nil(), "x")
	assert.False(t, ok)

	cell := AssocFind(alist, "y")
	require.NotNil(t, cell)
	cell.Tail = Uint(20)
	v, _ = AssocLookup(alist, "y")
	assert.Equal(t, uint64(20), MustUint(v))

	requireFatal(t, ErrReferenceNotExpectedType, func() { AssocLookup(List(Uint(1)), "x") })
}

func TestPair(t *testing.T) {
	v := Cons(Uint(1), Nil())
	p := MustPair(v)
	assert.Equal(t, uint64(1), MustUint(Head(v)))
	p.Tail = uints(2)
	p.Head = Uint(0)
	assert.Equal(t, "(0 2)", FormatString(v))
	assert.True(t, IsNil(Tail(Tail(v))))

	empty := EmptyExpr()
	assert.True(t, IsEmptyExpr(empty))
	assert.False(t, IsEmptyExpr(Nil()))
	assert.False(t, IsEmptyExpr(v))
	p, ok := GetPair(empty)
	assert.True(t, ok)
	assert.Nil(t, p)
	_, ok = GetPair(Uint(1))
	assert.False(t, ok)
	requireFatal(t, ErrListIndexOutOfRange, func() { Head(empty) })
	requireFatal(t, ErrReferenceNotExpectedType, func() { Tail(Uint(1)) })
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name  string
		list  LVal
		elems []uint64
		ok    bool
	}{
		{"nil", Nil(), nil, true},
		{"empty", EmptyExpr(), nil, true},
		{"proper", uints(1, 2, 3), []uint64{1, 2, 3}, true},
		{"improper", Cons(Uint(1), Cons(Uint(2), Uint(3))), []uint64{1, 2}, false},
		{"atom", Uint(1), nil, false},
	}
	for _, test := range tests {
		elems, err := Slice(test.list)
		if test.ok {
			assert.NoError(t, err, test.name)
		} else {
			assert.Error(t, err, test.name)
		}
		var xs []uint64
		for _, v := range elems {
			xs = append(xs, MustUint(v))
		}
		assert.Equal(t, test.elems, xs, test.name)
	}
}
