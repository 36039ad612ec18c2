package evaluator

import (
	"math/big"
	"strconv"
)

// Token is a classified piece of an expression. Kind selects which of the
// other fields are meaningful. Tokens are not modified after they are
// produced.
type Token struct {
	Kind Kind
	// Text is the source text of the token. For variables, it is the name
	// after normalization.
	Text string
	// Pos is the 1-based rune column at which the token starts.
	Pos int
	// Num is the value of a KindNumber token. The evaluator copies it and
	// never modifies it.
	Num *big.Float
	// Op is the operator of a KindOperator token.
	Op *Operator
	// Err is the failure carried by a KindError token.
	Err error
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// Kind is the variant of a token.
type Kind int8

const (
	KindNone Kind = iota
	// KindEnd indicates the end of the input.
	KindEnd
	// KindNumber is a literal or a constant such as pi.
	KindNumber
	// KindOperator is a binary operator, unary operator, or function name.
	KindOperator
	// KindPunct is an open or close parenthesis.
	KindPunct
	// KindVariable is a reference to a variable, resolved when the
	// expression is evaluated.
	KindVariable
	// KindError indicates a lexical error. The error is in Err.
	KindError
)

// OpKind distinguishes the ways an operator takes operands.
type OpKind int8

const (
	OpNone OpKind = iota
	// OpBinary operators combine the two operands around them.
	OpBinary
	// OpUnary operators apply to the operand following them.
	OpUnary
	// OpFunction operators are named functions of the operand following them.
	OpFunction
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind,OpKind -trimprefix=Kind -output=kind_string.go
//go:generate go mod tidy

// TokenSource produces the tokens of one expression. After returning a
// KindEnd or KindError token, a TokenSource is not used again.
type TokenSource interface {
	Next() Token
}

// sliceSource is a TokenSource over a fixed list of tokens.
type sliceSource struct {
	toks []Token
}

// Tokens creates a TokenSource which produces the given tokens followed by
// KindEnd.
func Tokens(toks ...Token) TokenSource {
	return &sliceSource{toks: toks}
}

func (s *sliceSource) Next() Token {
	if len(s.toks) == 0 {
		return Token{Kind: KindEnd}
	}
	t := s.toks[0]
	s.toks = s.toks[1:]
	return t
}
