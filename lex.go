package evaluator

import (
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^×÷="

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
	// prefix is whether a + or - scanned next is unary, i.e. whether the
	// last token was the start of input, an operator, or an open paren.
	prefix bool
	// ev supplies functions, constants, and the precision of numbers.
	ev *Evaluator
}

func lex(src io.RuneScanner, ev *Evaluator) *lexer {
	return &lexer{
		src:    src,
		rune:   1,
		prefix: true,
		ev:     ev,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// Next scans the next token from the input. Once the input is exhausted, the
// result is always a KindEnd token.
func (l *lexer) Next() Token {
	tok := l.next()
	switch tok.Kind {
	case KindOperator:
		l.prefix = true
	case KindPunct:
		l.prefix = tok.Text == "("
	default:
		l.prefix = false
	}
	return tok
}

func (l *lexer) next() Token {
	if l.eof {
		return Token{Kind: KindEnd, Pos: l.rune}
	}
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = KindEnd
				l.eof = true
				return tok
			}
			return failed(tok, err)
		}
		switch {
		case unicode.IsSpace(r):
			tok.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return failed(tok, err)
			}
			tok.Text = l.buf.String()
			tok.Kind = KindNumber
			tok.Num = l.ev.num(tok.Text)
			return tok
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return failed(tok, err)
			}
			return l.ident(tok, norm.NFC.String(l.buf.String()))
		case r == '∞':
			tok.Text = "∞"
			tok.Kind = KindNumber
			tok.Num = l.ev.num(tok.Text)
			return tok
		case r == '(', r == ')':
			tok.Text = string(r)
			tok.Kind = KindPunct
			return tok
		default:
			if strings.ContainsRune(Operators, r) {
				tok.Text = string(r)
				tok.Kind = KindOperator
				if l.prefix {
					tok.Op = unop(tok.Text)
				}
				if tok.Op == nil {
					tok.Op = binop(tok.Text)
				}
				return tok
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return failed(tok, l.error(""))
		}
	}
}

// ident classifies an identifier as a number, function, or variable.
func (l *lexer) ident(tok Token, name string) Token {
	tok.Text = name
	// inf looks like an identifier, so check for it here.
	switch name {
	case "inf", "Inf":
		tok.Kind = KindNumber
		tok.Num = l.ev.num(name)
		return tok
	}
	fn := l.ev.funcs[name]
	switch {
	case fn == nil:
		tok.Kind = KindVariable
	case fn.CanCall(1):
		tok.Kind = KindOperator
		tok.Op = FuncOperator(name, fn)
	case fn.CanCall(0):
		r := new(big.Float).SetPrec(l.ev.prec)
		if err := fn.Call(l.ev, nil, r); err != nil {
			return failed(tok, err)
		}
		tok.Kind = KindNumber
		tok.Num = r
	default:
		return failed(tok, &CallError{Col: tok.Pos, Func: name})
	}
	return tok
}

// failed turns tok into an error token.
func failed(tok Token, err error) Token {
	tok.Kind = KindError
	tok.Op = nil
	tok.Num = nil
	tok.Err = err
	return tok
}

func (l *lexer) scanNum() error {
	var dig, dot, e, le, ed bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if unicode.IsSpace(r) {
			l.unreadRune()
			break
		}
		if r == '+' || r == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !le {
				l.unreadRune()
				break
			}
			le = false
			l.buf.WriteRune(r)
			continue
		}
		if strings.ContainsRune(Operators+"()", r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		switch r {
		case '.':
			if dot || e {
				return l.error("number")
			}
			dot = true
			le = false
		case 'e', 'E':
			if !dig || e {
				return l.error("number")
			}
			e = true
			le = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		default:
			return l.error("number")
		}
	}
	if !dig || (e && !ed) {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', r == '.', unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
