package lisp

import (
	"testing"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFatal(t *testing.T, code ErrorCode, fn func()) {
	t.Helper()
	err := Catch(fn)
	require.NotNil(t, err, "expected fatal error: %v", code)
	assert.Equal(t, code, err.Code, err.Error())
}

func TestNil(t *testing.T) {
	var _nil LVal
	require.Equal(t, LNil, _nil.Type())
	v := Nil()
	require.Equal(t, LNil, v.Type())
	assert.True(t, IsNil(v))
}

func TestString(t *testing.T) {
	for _, x := range []string{
		"", "hello", "t",
	} {
		v := String(x)
		y, ok := GetString(v)
		assert.True(t, ok, "input: %v", x)
		assert.Equal(t, x, y, "input: %v", x)
	}
	_, ok := GetString(Symbol("hello"))
	assert.False(t, ok)
}

func TestSymbol(t *testing.T) {
	for _, x := range []string{
		"x", "set!", "comet-vm",
	} {
		v := Symbol(x)
		y, ok := GetSymbol(v)
		assert.True(t, ok, "input: %v", x)
		assert.Equal(t, x, y, "input: %v", x)
		assert.Equal(t, symbol.Hash(x), SymbolHash(v), "input: %v", x)
	}
}

func TestUint(t *testing.T) {
	for _, x := range []uint64{
		0, 1, 256, 100000, 1<<64 - 1,
	} {
		v := Uint(x)
		y, ok := GetUint(v)
		assert.True(t, ok, "input: %v", x)
		assert.Equal(t, x, y, "input: %v", x)
		assert.Equal(t, x, RequireTag(v, LUint), "input: %v", x)
	}
}

func TestRequireTag(t *testing.T) {
	tags := []LType{
		LNil, LCons, LString, LSymbol, LUint, LErrorCode, LBool, LPrimitive, LClosure, LThreadState,
	}
	for _, tag := range tags {
		v := Make(tag, 42, nil)
		assert.Equal(t, uint64(42), RequireTag(v, tag), "tag: %v", tag)
		for _, other := range tags {
			if other == tag {
				continue
			}
			requireFatal(t, ErrReferenceNotExpectedType, func() { RequireTag(v, other) })
		}
	}
}

func TestBool(t *testing.T) {
	assert.True(t, IsFalse(False()))
	assert.False(t, IsTrue(False()))
	assert.True(t, IsTrue(True()))
	assert.True(t, IsTrue(Bool(true)))
	assert.True(t, IsFalse(Bool(false)))
	// only the canonical false value is false
	for _, v := range []LVal{Nil(), Uint(0), String(""), EmptyExpr(), ErrorCodeVal(ErrUnknown)} {
		assert.True(t, IsTrue(v), "input: %v", FormatString(v))
	}
	illegal := Make(LBool, 2, nil)
	requireFatal(t, ErrReferenceNotExpectedType, func() { IsTrue(illegal) })
}

func TestErrorCodeVal(t *testing.T) {
	v := ErrorCodeVal(ErrClosureHasNoBody)
	code, ok := GetErrorCode(v)
	assert.True(t, ok)
	assert.Equal(t, ErrClosureHasNoBody, code)
	_, ok = GetErrorCode(Uint(uint64(ErrClosureHasNoBody)))
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Uint(3), Uint(3)))
	assert.False(t, Equal(Uint(3), Uint(4)))
	assert.False(t, Equal(Uint(0), False()))
	assert.True(t, Equal(Symbol("a"), Symbol("a")))
	assert.False(t, Equal(Symbol("a"), String("a")))
	assert.True(t, Equal(List(Uint(1), String("x")), List(Uint(1), String("x"))))
	assert.False(t, Equal(List(Uint(1)), List(Uint(1), Uint(2))))
	assert.True(t, Equal(EmptyExpr(), EmptyExpr()))
	assert.False(t, Equal(ThreadState(1), ThreadState(1)))
}
