package lisp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "cannot evaluate empty expression", ErrCantEvalEmptyExpression.String())
	assert.Equal(t, "wrong number of arguments", ErrWrongNumberOfArgs.String())
	assert.Equal(t, "unknown error", ErrorCode(1000).String())
	assert.Equal(t, "unknown error", ErrorCode(-1).String())
}

func TestCatch(t *testing.T) {
	err := Catch(func() {})
	assert.Nil(t, err)

	err = Catch(func() { Fatalf(ErrVariableNotFound, "x") })
	require.NotNil(t, err)
	assert.Equal(t, ErrVariableNotFound, err.Code)
	assert.Equal(t, "x", err.Detail)
	assert.Contains(t, err.Error(), "variable not found: x")
	assert.NotEmpty(t, err.File)
	assert.NotZero(t, err.Line)

	var target error = err
	var ferr *FatalError
	assert.True(t, errors.As(target, &ferr))

	assert.PanicsWithValue(t, "boom", func() {
		Catch(func() { panic("boom") })
	})
}

func TestFatalErrorMessage(t *testing.T) {
	err := &FatalError{Code: ErrNotReached}
	assert.Equal(t, "unreachable code reached", err.Error())
	err = &FatalError{Code: ErrNotReached, File: "eval.go", Line: 12, Detail: "released frame"}
	assert.Equal(t, "eval.go:12: unreachable code reached: released frame", err.Error())
}
