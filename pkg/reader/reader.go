// Package reader turns program text into expression trees for the evaluator.
//
// Tokenizing and parsing are delegated to the elps recursive descent parser.
// Its values are converted to lisp.LVal: integers become unsigned integers,
// s-expressions become lists and quoted values become (quote x) forms.
package reader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	lisp1 "github.com/luthersystems/elps/lisp"
	"github.com/luthersystems/elps/parser/rdparser"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
)

// ReadBytes parses program as plaintext.
func ReadBytes(name string, program []byte) ([]lisp.LVal, error) {
	return Read(name, bytes.NewReader(program))
}

// ReadString parses program as plaintext.
func ReadString(name string, program string) ([]lisp.LVal, error) {
	return Read(name, strings.NewReader(program))
}

// Read parses a plaintext program read from r and returns its top level
// expressions in order.  The name is used in error messages.
func Read(name string, r io.Reader) ([]lisp.LVal, error) {
	vals, err := rdparser.NewReader().Read(name, r)
	if err != nil {
		return nil, err
	}
	exprs := make([]lisp.LVal, len(vals))
	for i := range vals {
		exprs[i], err = convert(vals[i])
		if err != nil {
			return nil, fmt.Errorf("%s: expression %d: %w", name, i, err)
		}
	}
	return exprs, nil
}

func quote(v lisp.LVal) lisp.LVal {
	return lisp.List(lisp.Symbol("quote"), v)
}

func convert(v *lisp1.LVal) (lisp.LVal, error) {
	if v.IsNil() {
		if v.Quoted {
			return quote(lisp.Nil()), nil
		}
		return lisp.Nil(), nil
	}
	var x lisp.LVal
	switch v.Type {
	case lisp1.LSymbol:
		x = lisp.Symbol(v.Str)
	case lisp1.LInt:
		if v.Int < 0 {
			return lisp.Nil(), fmt.Errorf("negative integer literal: %d", v.Int)
		}
		x = lisp.Uint(uint64(v.Int))
	case lisp1.LFloat:
		return lisp.Nil(), fmt.Errorf("floating point literal not supported: %v", v.Float)
	case lisp1.LString:
		x = lisp.String(v.Str)
	case lisp1.LSExpr:
		cells := make([]lisp.LVal, len(v.Cells))
		for i := range cells {
			var err error
			cells[i], err = convert(v.Cells[i])
			if err != nil {
				return lisp.Nil(), fmt.Errorf("list cell %d: %w", i, err)
			}
		}
		x = lisp.List(cells...)
	case lisp1.LQuote:
		if len(v.Cells) != 1 {
			return lisp.Nil(), fmt.Errorf("malformed quote")
		}
		_v, err := convert(v.Cells[0])
		if err != nil {
			return lisp.Nil(), fmt.Errorf("quoted val: %w", err)
		}
		return quote(_v), nil
	default:
		return lisp.Nil(), fmt.Errorf("invalid input type: %v", v.Type)
	}
	if v.Quoted {
		return quote(x), nil
	}
	return x, nil
}
