package lisp

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// ErrorCode identifies the kind of a fatal interpreter failure.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	ErrMemoryAllocation
	ErrListIndexOutOfRange
	ErrIllegalListIndex
	ErrCantEvalEmptyExpression
	ErrVariableNotFound
	ErrReferenceNotExpectedType
	ErrNotReached
	ErrMaxPrimitiveArgs
	ErrWrongNumberOfArgs
	ErrClosureHasNoBody
)

var errorCodeStrings = []string{
	ErrUnknown:                  "unknown error",
	ErrMemoryAllocation:         "memory allocation failed",
	ErrListIndexOutOfRange:      "list index out of range",
	ErrIllegalListIndex:         "illegal list index",
	ErrCantEvalEmptyExpression:  "cannot evaluate empty expression",
	ErrVariableNotFound:         "variable not found",
	ErrReferenceNotExpectedType: "value is not the expected type",
	ErrNotReached:               "unreachable code reached",
	ErrMaxPrimitiveArgs:         "too many arguments",
	ErrWrongNumberOfArgs:        "wrong number of arguments",
	ErrClosureHasNoBody:         "closure has no body",
}

func (code ErrorCode) String() string {
	if code < 0 || int(code) >= len(errorCodeStrings) {
		return errorCodeStrings[ErrUnknown]
	}
	return errorCodeStrings[code]
}

// FatalError describes an unrecoverable interpreter failure and the source
// location that raised it.  FatalError values are only ever delivered by
// panicking; see Fatal and Catch.
type FatalError struct {
	Code   ErrorCode
	File   string
	Line   int
	Detail string
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	msg := e.Code.String()
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}
	if e.File == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
}

// Fatal terminates evaluation with the given error code.  Fatal never
// returns.
func Fatal(code ErrorCode) {
	panic(newFatalError(code, ""))
}

// Fatalf is like Fatal but attaches a formatted detail message.
func Fatalf(code ErrorCode, format string, args ...interface{}) {
	panic(newFatalError(code, fmt.Sprintf(format, args...)))
}

func newFatalError(code ErrorCode, detail string) *FatalError {
	e := &FatalError{Code: code, Detail: detail}
	// skip newFatalError and Fatal/Fatalf, then any helpers in this package
	// (RequireTag, Nth, ...) so the site reported is the caller's.
	for skip := 2; ; skip++ {
		pc, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		e.File, e.Line = filepath.Base(file), line
		fn := runtime.FuncForPC(pc)
		if fn == nil || !inThisPackage(fn.Name()) {
			break
		}
	}
	return e
}

const pkgPath = "github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp."

func inThisPackage(fn string) bool {
	return len(fn) > len(pkgPath) && fn[:len(pkgPath)] == pkgPath
}

// Catch calls fn and returns the FatalError raised during its execution, if
// any.  Panics that are not a *FatalError are propagated.  Catch is meant for
// hosts and tests that sit at the outermost evaluation boundary; there is no
// way to resume evaluation after a fatal error.
func Catch(fn func()) (err *FatalError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ferr, ok := r.(*FatalError)
		if !ok {
			panic(r)
		}
		err = ferr
	}()
	fn()
	return nil
}
