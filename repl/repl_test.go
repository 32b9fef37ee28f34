package repl

import (
	"bytes"
	"testing"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/eval"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/langproc"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	tests := []struct {
		text     string
		complete bool
	}{
		{`1`, true},
		{`(+ 1 2)`, true},
		{`(+ 1`, false},
		{`(define f (lambda (x)`, false},
		{`(f "(")`, true},
		{`(f "\"(")`, true},
		{`(f "abc`, false},
		{`(f ; (`, false},
		{"(f ; (\n)", true},
		{`())`, true},
	}
	for _, test := range tests {
		assert.Equal(t, test.complete, complete([]byte(test.text)), test.text)
	}
}

func TestEvalInput(t *testing.T) {
	e, err := eval.New()
	require.NoError(t, err)
	env := langproc.NewGlobalEnviron()

	var out bytes.Buffer
	err = evalInput(&out, e, env, []byte(`(define x 4) (* x x)`))
	require.NoError(t, err)
	assert.Equal(t, "\n;Value: ()\n\n\n;Value: 16\n\n", out.String())

	out.Reset()
	err = evalInput(&out, e, env, []byte(`(+ x`))
	assert.Error(t, err)
	assert.Empty(t, out.String())

	err = evalInput(&out, e, env, []byte(`(car y)`))
	require.Error(t, err)
	ferr, ok := err.(*lisp.FatalError)
	require.True(t, ok)
	assert.Equal(t, lisp.ErrVariableNotFound, ferr.Code)
}
