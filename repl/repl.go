package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jasonaaronwilson/armyknife-scheme/pkg/environ"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/eval"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/lisp"
	"github.com/jasonaaronwilson/armyknife-scheme/pkg/reader"
)

const banner = `;;; armyknife-scheme - a demonstration scheme interpreter
;;;   C-d will exit
`

// RunRepl runs a simple repl evaluating expressions in env.  RunRepl returns
// nil when input is exhausted.  A fatal interpreter error ends the session
// and is returned.
func RunRepl(prompt string, e *eval.Evaluator, env *environ.Environ) error {
	errf(banner)

	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		if !complete(line) {
			buf = append([]byte(nil), line...)
			rl.SetPrompt(contPrompt)
			continue
		}
		err = evalInput(os.Stdout, e, env, line)
		if err != nil {
			if _, ok := err.(*lisp.FatalError); ok {
				return err
			}
			errln(err)
		}
	}
	if err != io.EOF {
		return err
	}
	errln("done")
	return nil
}

// evalInput reads and evaluates the expressions in input, writing the value
// of each to w.  Syntax errors are returned before anything is evaluated.
func evalInput(w io.Writer, e *eval.Evaluator, env *environ.Environ, input []byte) error {
	exprs, err := reader.ReadBytes("stdin", input)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		var v lisp.LVal
		ferr := lisp.Catch(func() {
			v = e.Eval(env, expr, true)
		})
		if ferr != nil {
			return ferr
		}
		_, err = fmt.Fprintf(w, "\n;Value: %s\n\n", lisp.FormatString(v))
		if err != nil {
			return err
		}
	}
	return nil
}

// complete returns true if text contains no unterminated list or string.  An
// excess of closing parens is considered complete so the reader can report
// it.
func complete(text []byte) bool {
	depth := 0
	inString := false
	inComment := false
	escaped := false
	for _, c := range text {
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == ';':
			inComment = true
		case c == '"':
			inString = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return depth <= 0 && !inString
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
