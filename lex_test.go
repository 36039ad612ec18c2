package evaluator

import (
	"math/big"
	"strings"
	"testing"
)

// tk is the comparable part of a Token.
type tk struct {
	text string
	kind Kind
	pos  int
	op   OpKind
}

func tkOf(t Token) tk {
	r := tk{text: t.Text, kind: t.Kind, pos: t.Pos}
	if t.Op != nil {
		r.op = t.Op.Kind
	}
	if t.Kind == KindError {
		r.text = ""
	}
	return r
}

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []tk
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []tk{{"0", KindNumber, 1, 0}}},
		{"9876543210", []tk{{"9876543210", KindNumber, 1, 0}}},
		{"1 0", []tk{{"1", KindNumber, 1, 0}, {"0", KindNumber, 3, 0}}},
		{"1.0", []tk{{"1.0", KindNumber, 1, 0}}},
		{"1e1", []tk{{"1e1", KindNumber, 1, 0}}},
		{"1e", []tk{{"", KindError, 1, 0}}},
		{"1e+1", []tk{{"1e+1", KindNumber, 1, 0}}},
		{"1e-1", []tk{{"1e-1", KindNumber, 1, 0}}},
		{"1.1.1", []tk{{"", KindError, 1, 0}, {"1", KindNumber, 5, 0}}},
		{"1.0e1", []tk{{"1.0e1", KindNumber, 1, 0}}},
		{".", []tk{{"", KindError, 1, 0}}},
		{".1", []tk{{".1", KindNumber, 1, 0}}},
		{".1e1", []tk{{".1e1", KindNumber, 1, 0}}},
		{"1a", []tk{{"", KindError, 1, 0}}},
		{"∞", []tk{{"∞", KindNumber, 1, 0}}},
		{"inf", []tk{{"inf", KindNumber, 1, 0}}},
		{"pi", []tk{{"pi", KindNumber, 1, 0}}},
		// identifiers
		{"x", []tk{{"x", KindVariable, 1, 0}}},
		{"e1", []tk{{"e1", KindVariable, 1, 0}}},
		{"π", []tk{{"π", KindVariable, 1, 0}}},
		{"eπ", []tk{{"eπ", KindVariable, 1, 0}}},
		{"_1234_", []tk{{"_1234_", KindVariable, 1, 0}}},
		{"cafe\u0301", []tk{{"caf\u00e9", KindVariable, 1, 0}}},
		{"sqrt", []tk{{"sqrt", KindOperator, 1, OpFunction}}},
		{"x(", []tk{{"x", KindVariable, 1, 0}, {"(", KindPunct, 2, 0}}},
		// operators
		{"1+0", []tk{{"1", KindNumber, 1, 0}, {"+", KindOperator, 2, OpBinary}, {"0", KindNumber, 3, 0}}},
		{"1*0", []tk{{"1", KindNumber, 1, 0}, {"*", KindOperator, 2, OpBinary}, {"0", KindNumber, 3, 0}}},
		{"2×3÷4", []tk{
			{"2", KindNumber, 1, 0}, {"×", KindOperator, 2, OpBinary},
			{"3", KindNumber, 3, 0}, {"÷", KindOperator, 4, OpBinary},
			{"4", KindNumber, 5, 0},
		}},
		{"x=1", []tk{{"x", KindVariable, 1, 0}, {"=", KindOperator, 2, OpBinary}, {"1", KindNumber, 3, 0}}},
		{"-1", []tk{{"-", KindOperator, 1, OpUnary}, {"1", KindNumber, 2, 0}}},
		{"+", []tk{{"+", KindOperator, 1, OpUnary}}},
		{"*", []tk{{"*", KindOperator, 1, OpBinary}}},
		{"++", []tk{{"+", KindOperator, 1, OpUnary}, {"+", KindOperator, 2, OpUnary}}},
		{"a--b", []tk{
			{"a", KindVariable, 1, 0}, {"-", KindOperator, 2, OpBinary},
			{"-", KindOperator, 3, OpUnary}, {"b", KindVariable, 4, 0},
		}},
		{"(-1)-1", []tk{
			{"(", KindPunct, 1, 0}, {"-", KindOperator, 2, OpUnary},
			{"1", KindNumber, 3, 0}, {")", KindPunct, 4, 0},
			{"-", KindOperator, 5, OpBinary}, {"1", KindNumber, 6, 0},
		}},
		{"sqrt-1", []tk{{"sqrt", KindOperator, 1, OpFunction}, {"-", KindOperator, 5, OpUnary}, {"1", KindNumber, 6, 0}}},
		{"3 * -2", []tk{{"3", KindNumber, 1, 0}, {"*", KindOperator, 3, OpBinary}, {"-", KindOperator, 5, OpUnary}, {"2", KindNumber, 6, 0}}},
		// parentheses
		{"()", []tk{{"(", KindPunct, 1, 0}, {")", KindPunct, 2, 0}}},
		// erroneous symbols
		{"$", []tk{{"", KindError, 1, 0}}},
		{"[]", []tk{{"", KindError, 1, 0}, {"", KindError, 2, 0}}},
		{"a$", []tk{{"a", KindVariable, 1, 0}, {"", KindError, 2, 0}}},
		{"$a", []tk{{"", KindError, 1, 0}, {"a", KindVariable, 2, 0}}},
		{"0$", []tk{{"", KindError, 1, 0}}},
		{"$0", []tk{{"", KindError, 1, 0}, {"0", KindNumber, 2, 0}}},
		{"$$", []tk{{"", KindError, 1, 0}, {"", KindError, 2, 0}}},
	}

	ev := New()
	for _, c := range cases {
		scan := lex(strings.NewReader(c.src), ev)
		for _, want := range c.tokens {
			tok := scan.Next()
			if tok.Kind == KindEnd {
				t.Errorf("scanning %q: expected token %v but got end", c.src, want)
				continue
			}
			if got := tkOf(tok); got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if tok.Kind == KindError {
				if _, ok := tok.Err.(*LexError); !ok {
					t.Errorf("scanning %q: error token carries %#v", c.src, tok.Err)
				}
			}
			if tok.Kind == KindNumber && tok.Num == nil {
				t.Errorf("scanning %q: number token without value", c.src)
			}
		}
		for tok := scan.Next(); tok.Kind != KindEnd; tok = scan.Next() {
			t.Errorf("scanning %q: extra token %v", c.src, tkOf(tok))
		}
		if tok := scan.Next(); tok.Kind != KindEnd {
			t.Errorf("scanning %q: no end after end, got %v", c.src, tkOf(tok))
		}
	}
}

func TestLexNumberValues(t *testing.T) {
	ev := New()
	cases := map[string]string{
		"0":    "0",
		"1.5":  "1.5",
		"1e3":  "1000",
		".25":  "0.25",
		"∞":    "+Inf",
		"inf":  "+Inf",
		"1e-1": "0.1",

		"1e400000000000":            "+Inf",
		"1e-400000000000":           "0",
		"1e-99999999999999999999":   "0",
		"1.5E-99999999999999999999": "0",
	}
	for src, want := range cases {
		tok := lex(strings.NewReader(src), ev).Next()
		if tok.Kind != KindNumber {
			t.Errorf("scanning %q: got %v", src, tok)
			continue
		}
		if got := tok.Num.Text('g', 10); got != want {
			t.Errorf("scanning %q: want %s, got %s", src, want, got)
		}
	}
}

func TestLexConstantCall(t *testing.T) {
	ev := New(WithFunc("twice", Niladic(func(out *big.Float) *big.Float { return out.SetInt64(2) })))
	tok := lex(strings.NewReader("twice"), ev).Next()
	if tok.Kind != KindNumber || tok.Num.Cmp(big.NewFloat(2)) != 0 {
		t.Errorf("constant scanned as %v", tok)
	}
}

// twoArg is a function that can be called with neither zero nor one argument.
type twoArg struct{}

func (twoArg) Call(ev *Evaluator, invoc []*big.Float, r *big.Float) error {
	r.Add(invoc[0], invoc[1])
	return nil
}

func (twoArg) CanCall(n int) bool {
	return n == 2
}

func TestLexUncallable(t *testing.T) {
	ev := New(WithFunc("add2", twoArg{}))
	tok := lex(strings.NewReader("add2"), ev).Next()
	if tok.Kind != KindError {
		t.Fatalf("add2 scanned as %v", tok)
	}
	if err, ok := tok.Err.(*CallError); !ok || err.Func != "add2" || err.Pos() != 1 {
		t.Errorf("wrong error %#v", tok.Err)
	}
}
