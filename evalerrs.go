package evaluator

import (
	"errors"
	"strconv"
)

// Errors wrapped by EvalError. Use errors.Is to check for them.
var (
	// ErrUnknownToken indicates a token that cannot appear in an expression.
	ErrUnknownToken = errors.New("unknown token")
	// ErrTooFewOperands indicates an operator missing an operand, or an
	// expression with no value at all.
	ErrTooFewOperands = errors.New("too few operands")
	// ErrTooManyOperands indicates values not joined by any operator.
	ErrTooManyOperands = errors.New("too many operands")
	// ErrTooManyOperators indicates operators left over after resolution.
	ErrTooManyOperators = errors.New("too many operators")
	// ErrParenthesis indicates unbalanced parentheses.
	ErrParenthesis = errors.New("invalid parenthesization")
)

// EvalError is an error indicating an expression whose tokens do not resolve
// to a single value. It implements InputError.
type EvalError struct {
	// Col is the position of the token at which the problem was found, or 0
	// if the problem was found at the end of the expression.
	Col int
	// Text is the offending token, if any.
	Text string
	// Err is one of the ErrXxx values in this package.
	Err error
}

func (err *EvalError) Error() string {
	msg := err.Err.Error()
	if err.Text != "" {
		msg += " at " + strconv.Quote(err.Text)
	}
	return errpos(err.Col, msg)
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating an operator that cannot be applied
// where it appears, such as = anywhere but immediately after the variable
// beginning an expression. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator's symbol.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "misplaced operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function name which names a function
// that can be called neither with one argument nor with none. It implements
// InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name.
	Func string
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with 0 or 1 arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input other than NameError and DomainError implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*EvalError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*LexError)(nil)
)
