package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedNative string

func (n namedNative) DebugName() string { return string(n) }

func TestFormat(t *testing.T) {
	tests := []struct {
		v      LVal
		result string
	}{
		{Nil(), "()"},
		{EmptyExpr(), "()"},
		{Uint(42), "42"},
		{String("a\"b"), `"a\"b"`},
		{Symbol("set!"), "set!"},
		{True(), "#t"},
		{False(), "#f"},
		{Make(LBool, 7, nil), "#<illegal-boolean-value>"},
		{ErrorCodeVal(ErrCantEvalEmptyExpression), "#<error-code-4>"},
		{Make(LPrimitive, 0, namedNative("+")), "#<primitive-procedure +>"},
		{Make(LClosure, 0, namedNative("")), "#<closure>"},
		{ThreadState(nil), "#<thread-state>"},
		{List(Symbol("+"), Uint(1), List(Uint(2))), "(+ 1 (2))"},
		{Cons(Uint(1), Uint(2)), "(1 . 2)"},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		n, err := Format(&buf, test.v)
		assert.NoError(t, err)
		assert.Equal(t, len(test.result), n)
		assert.Equal(t, test.result, buf.String())
	}
}
