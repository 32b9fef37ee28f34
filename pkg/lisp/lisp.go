package lisp

import (
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/symbol"
)

// LType is the tag of a value.  It selects how Data and Native are
// interpreted.
type LType uint8

const (
	// LNil is the absense of a value and terminates lists.
	LNil LType = iota
	// LCons is a container that forms a linked list termined by LNil.  An
	// LCons with no cell is an empty list.
	// Schema:
	// 	Native: *Pair
	LCons
	// LString is a go string value
	// Schema:
	// 	Native: string value
	LString
	// LSymbol is a symbolic name.
	// Schema:
	// 	Data: symbol.Hash of the name
	// 	Native: string name
	LSymbol
	// LUint is an unsigned 64-bit integer.
	// Schema:
	// 	Data: uint64 value
	LUint
	// LErrorCode is an interpreter error code used as a value.
	// Schema:
	// 	Data: ErrorCode value
	LErrorCode
	// LBool is an integer representing a boolean value
	// Schema:
	//  Data: 0x0 if false and 0x1 if true.  Anything else is illegal.
	LBool
	// LPrimitive is a procedure implemented in go.
	// Schema:
	// 	Native: procedure object
	LPrimitive
	// LClosure is a procedure defined by a lambda expression.
	// Schema:
	// 	Native: closure object
	LClosure
	// LThreadState is opaque host state (e.g. a debugged cpu thread).
	// Schema:
	// 	Native: host data
	LThreadState
)

var typeNames = []string{
	LNil:         "nil",
	LCons:        "pair",
	LString:      "string",
	LSymbol:      "symbol",
	LUint:        "uint64",
	LErrorCode:   "error-code",
	LBool:        "boolean",
	LPrimitive:   "primitive-procedure",
	LClosure:     "closure",
	LThreadState: "thread-state",
}

func (t LType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "#<unknown-type>"
}

// LVal is a lisp value.  The zero LVal is a valid LNil value.
type LVal struct {
	Tag    LType
	Data   uint64
	Native interface{}
}

// Type returns the tag of v.
func (v LVal) Type() LType {
	return v.Tag
}

// Make constructs a value with the given tag and payload.  Make is a
// low-level function; the typed constructors below should be preferred.
func Make(t LType, data uint64, native interface{}) LVal {
	return LVal{
		Tag:    t,
		Data:   data,
		Native: native,
	}
}

// RequireTag returns the payload of v.  RequireTag fails fatally if v was not
// constructed with tag t.
func RequireTag(v LVal, t LType) uint64 {
	if v.Type() != t {
		Fatalf(ErrReferenceNotExpectedType, "value is not type %v: %v", t, v.Type())
	}
	return v.Data
}

// RequireNative is like RequireTag but returns the heap object referenced by
// v.
func RequireNative(v LVal, t LType) interface{} {
	if v.Type() != t {
		Fatalf(ErrReferenceNotExpectedType, "value is not type %v: %v", t, v.Type())
	}
	return v.Native
}

// Nil returns an LNil value
func Nil() LVal {
	return LVal{
		Tag: LNil,
	}
}

// IsNil return true if v is LNil
func IsNil(v LVal) bool {
	return v.Type() == LNil
}

// Uint returns an LUint value
func Uint(x uint64) LVal {
	return LVal{
		Tag:  LUint,
		Data: x,
	}
}

// GetUint returns the uint64 value from v.
// GetUint returns false if v is not LUint.
func GetUint(v LVal) (uint64, bool) {
	if v.Type() != LUint {
		return 0, false
	}
	return v.Data, true
}

// MustUint returns the uint64 value from v and fails if v is not LUint.
func MustUint(v LVal) uint64 {
	return RequireTag(v, LUint)
}

// Bool returns an LBool with the truth value of ok.
func Bool(ok bool) LVal {
	if ok {
		return True()
	}
	return False()
}

// True returns the canonical true LBool value.
func True() LVal {
	return LVal{
		Tag:  LBool,
		Data: 1,
	}
}

// False returns the canonical false LBool value.
func False() LVal {
	return LVal{
		Tag:  LBool,
		Data: 0,
	}
}

// IsFalse returns true iff v is the canonical false value.
func IsFalse(v LVal) bool {
	if v.Type() != LBool {
		return false
	}
	switch v.Data {
	case 0:
		return true
	case 1:
		return false
	default:
		Fatalf(ErrReferenceNotExpectedType, "illegal boolean encoding: %#x", v.Data)
		return false
	}
}

// IsTrue returns true iff v is not the canonical false value.
func IsTrue(v LVal) bool {
	return !IsFalse(v)
}

// String returns an LString value
func String(str string) LVal {
	return LVal{
		Tag:    LString,
		Native: str,
	}
}

// GetString extracts string data from v.  GetString returns false if v is not
// LString.
func GetString(v LVal) (string, bool) {
	if v.Type() != LString {
		return "", false
	}
	return v.Native.(string), true
}

// Symbol returns an LSymbol value for name.  The hash of name is computed once
// and carried as the payload.
func Symbol(name string) LVal {
	return LVal{
		Tag:    LSymbol,
		Data:   symbol.Hash(name),
		Native: name,
	}
}

// GetSymbol extracts the name of v.  GetSymbol returns false if v is not an
// LSymbol.
func GetSymbol(v LVal) (string, bool) {
	if v.Type() != LSymbol {
		return "", false
	}
	return v.Native.(string), true
}

// MustSymbol returns the name of v and fails if v is not LSymbol.
func MustSymbol(v LVal) string {
	return RequireNative(v, LSymbol).(string)
}

// SymbolHash returns the precomputed hash carried by symbol v.
func SymbolHash(v LVal) uint64 {
	return RequireTag(v, LSymbol)
}

// ErrorCodeVal returns an LErrorCode value holding code.
func ErrorCodeVal(code ErrorCode) LVal {
	return LVal{
		Tag:  LErrorCode,
		Data: uint64(code),
	}
}

// GetErrorCode returns the ErrorCode held by v.
// GetErrorCode returns false if v is not LErrorCode.
func GetErrorCode(v LVal) (ErrorCode, bool) {
	if v.Type() != LErrorCode {
		return 0, false
	}
	return ErrorCode(v.Data), true
}

// ThreadState wraps opaque host state.
func ThreadState(state interface{}) LVal {
	return LVal{
		Tag:    LThreadState,
		Native: state,
	}
}

// Equal returns true if v1 is identical to v2.  Procedures are compared by
// reference.
func Equal(v1 LVal, v2 LVal) bool {
	if v1.Tag != v2.Tag {
		return false
	}
	switch v1.Type() {
	case LNil:
		return true
	case LUint, LBool, LErrorCode:
		return v1.Data == v2.Data
	case LString, LSymbol:
		return v1.Native.(string) == v2.Native.(string)
	case LCons:
		p1, p2 := next(v1), next(v2)
		if p1 == nil || p2 == nil {
			return p1 == p2
		}
		return Equal(p1.Head, p2.Head) && Equal(p1.Tail, p2.Tail)
	case LPrimitive, LClosure:
		return v1.Native == v2.Native
	default:
		// thread states are opaque host data
		return false
	}
}
