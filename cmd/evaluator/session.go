package main

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/qiniu/log"

	"github.com/Harshini-Jesi/Evaluator"
)

// session evaluates lines against one evaluator and prints the results.
type session struct {
	ev     *evaluator.Evaluator
	out    io.Writer
	format string
	json   bool
	echo   bool
	errc   *color.Color
	// failed counts the lines which failed to evaluate.
	failed int
}

func newSession(ev *evaluator.Evaluator, out io.Writer, conf *Config) *session {
	return &session{
		ev:     ev,
		out:    out,
		format: conf.Format + "\n",
		json:   conf.JSON,
		echo:   conf.Echo,
		errc:   color.New(color.FgRed, color.Bold),
	}
}

// result is a line of JSON output.
type result struct {
	Expr    string `json:"expr"`
	Value   string `json:"value,omitempty"`
	Postfix string `json:"postfix,omitempty"`
	Error   string `json:"error,omitempty"`
	Col     int    `json:"col,omitempty"`
}

// do handles one line of input. The result is false if the session should
// end.
func (s *session) do(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case ":quit", ":q":
		return false
	case ":vars":
		s.vars()
		return true
	}
	r, err := s.ev.Evaluate(line)
	if err != nil {
		s.failed++
	}
	if s.json {
		s.printJSON(line, r, err)
		return true
	}
	if err != nil {
		s.printErr(line, err)
		return true
	}
	if s.echo {
		fmt.Fprintf(s.out, "%s : ", s.ev.Postfix())
	}
	fmt.Fprintf(s.out, s.format, r)
	return true
}

func (s *session) printJSON(line string, r *big.Float, err error) {
	res := result{Expr: line}
	if err != nil {
		res.Error = err.Error()
		var ie evaluator.InputError
		if errors.As(err, &ie) {
			res.Col = ie.Pos()
		}
	} else {
		res.Value = strings.TrimSuffix(fmt.Sprintf(s.format, r), "\n")
		if s.echo {
			res.Postfix = s.ev.Postfix()
		}
	}
	if err := json.NewEncoder(s.out).Encode(res); err != nil {
		log.Errorf("encoding result: %v", err)
	}
}

func (s *session) printErr(line string, err error) {
	var ie evaluator.InputError
	if errors.As(err, &ie) && ie.Pos() > 0 && ie.Pos() <= len([]rune(line))+1 {
		fmt.Fprintln(s.out, line)
		fmt.Fprintln(s.out, strings.Repeat(" ", ie.Pos()-1)+"^")
	}
	s.errc.Fprintln(s.out, "error:", err)
}

// vars prints every variable and its value.
func (s *session) vars() {
	for _, name := range s.ev.Vars() {
		fmt.Fprintf(s.out, "%s = "+s.format, name, s.ev.Lookup(name))
	}
}

// completions lists the names which could complete the identifier before
// pos, cropped to the part that would be inserted, along with that
// identifier.
func completions(ev *evaluator.Evaluator, line []rune, pos int) (string, []string) {
	if pos > len(line) {
		pos = len(line)
	}
	if strings.HasPrefix(string(line[:pos]), ":") {
		word := string(line[:pos])
		return word, crop(word, []string{":quit", ":vars"})
	}
	start := pos
	for start > 0 && isIdent(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	if word == "" {
		return "", nil
	}
	names := append(ev.Vars(), ev.Funcs()...)
	return word, crop(word, names)
}

func crop(prefix string, names []string) []string {
	var r []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) && name != prefix {
			r = append(r, name[len(prefix):])
		}
	}
	return r
}

func isIdent(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
