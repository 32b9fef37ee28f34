package reader

import (
	"testing"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		program string
		result  []string
	}{
		{`1`, []string{`1`}},
		{`"abc"`, []string{`"abc"`}},
		{`abc`, []string{`abc`}},
		{`set!`, []string{`set!`}},
		{`get-tag`, []string{`get-tag`}},
		{`()`, []string{`()`}},
		{`(+ 1 2)`, []string{`(+ 1 2)`}},
		{`(- 10 4)`, []string{`(- 10 4)`}},
		{`(a (b c) ())`, []string{`(a (b c) ())`}},
		{`'x`, []string{`(quote x)`}},
		{`'(1 2)`, []string{`(quote (1 2))`}},
		{`(car '(1 2))`, []string{`(car (quote (1 2)))`}},
		{`1 2 ; comment
		  (f)`, []string{`1`, `2`, `(f)`}},
		{``, []string{}},
	}
	for _, test := range tests {
		exprs, err := ReadString("test", test.program)
		if !assert.NoError(t, err, test.program) {
			continue
		}
		result := make([]string, len(exprs))
		for i := range exprs {
			result[i] = lisp.FormatString(exprs[i])
		}
		assert.Equal(t, test.result, result, test.program)
	}
}

func TestReadTypes(t *testing.T) {
	exprs, err := ReadString("test", `(x 18446744073 "s")`)
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	lis := exprs[0]
	assert.Equal(t, lisp.LCons, lis.Type())
	assert.Equal(t, 3, lisp.Length(lis))

	sym := lisp.Nth(lis, 0)
	assert.Equal(t, lisp.LSymbol, sym.Type())
	assert.Equal(t, lisp.Symbol("x").Data, sym.Data)
	assert.Equal(t, uint64(18446744073), lisp.MustUint(lisp.Nth(lis, 1)))
	s, ok := lisp.GetString(lisp.Nth(lis, 2))
	assert.True(t, ok)
	assert.Equal(t, "s", s)
}

func TestReadErrors(t *testing.T) {
	for _, program := range []string{
		`(1 2`,
		`-1`,
		`1.5`,
		`(f 2.0)`,
	} {
		_, err := ReadString("test", program)
		assert.Error(t, err, program)
	}
}

func TestReadBytes(t *testing.T) {
	exprs, err := ReadBytes("test", []byte(`(define x 1)`))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, "(define x 1)", lisp.FormatString(exprs[0]))
}
