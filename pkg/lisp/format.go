package lisp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DebugNamer is implemented by native objects that carry a label for
// printing, such as procedures.
type DebugNamer interface {
	DebugName() string
}

// Format writes a source-code representation of v to w.  Procedures and
// thread state have no source representation and are written as #<...>
// descriptors.
func Format(w io.Writer, v LVal) (int, error) {
	var b strings.Builder
	format(&b, v)
	return io.WriteString(w, b.String())
}

// FormatString returns the representation of v written by Format.
func FormatString(v LVal) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v LVal) {
	switch v.Type() {
	case LNil:
		b.WriteString("()")
	case LCons:
		formatCons(b, v)
	case LString:
		b.WriteString(strconv.Quote(v.Native.(string)))
	case LSymbol:
		b.WriteString(v.Native.(string))
	case LUint:
		b.WriteString(strconv.FormatUint(v.Data, 10))
	case LErrorCode:
		fmt.Fprintf(b, "#<error-code-%d>", v.Data)
	case LBool:
		switch v.Data {
		case 0:
			b.WriteString("#f")
		case 1:
			b.WriteString("#t")
		default:
			b.WriteString("#<illegal-boolean-value>")
		}
	case LPrimitive:
		formatNative(b, "primitive-procedure", v.Native)
	case LClosure:
		formatNative(b, "closure", v.Native)
	case LThreadState:
		b.WriteString("#<thread-state>")
	default:
		fmt.Fprintf(b, "#<unknown-type-%d>", v.Type())
	}
}

func formatNative(b *strings.Builder, kind string, native interface{}) {
	b.WriteString("#<")
	b.WriteString(kind)
	if namer, ok := native.(DebugNamer); ok {
		if name := namer.DebugName(); name != "" {
			b.WriteString(" ")
			b.WriteString(name)
		}
	}
	b.WriteString(">")
}

func formatCons(b *strings.Builder, v LVal) {
	b.WriteString("(")
	for p := next(v); p != nil; {
		format(b, p.Head)
		switch p.Tail.Type() {
		case LNil:
			p = nil
		case LCons:
			p = next(p.Tail)
			if p != nil {
				b.WriteString(" ")
			}
		default:
			b.WriteString(" . ")
			format(b, p.Tail)
			p = nil
		}
	}
	b.WriteString(")")
}
