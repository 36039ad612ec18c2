package evaluator

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Operator is an operator or function as it appears in a token stream.
// Operators returned by this package are shared and must not be modified.
type Operator struct {
	// Name is the operator's symbol or the function's name.
	Name string
	// Kind distinguishes binary operators, unary operators, and functions.
	Kind OpKind
	// Prio is the intrinsic priority. Higher values bind more tightly.
	Prio int

	op arith
	fn Func
}

// Prefix reports whether the operator comes before its only operand.
func (op *Operator) Prefix() bool {
	return op.Kind == OpUnary || op.Kind == OpFunction
}

func (op *Operator) String() string {
	if op.Kind == OpUnary {
		return "u" + op.Name
	}
	return op.Name
}

// arith is the computation an operator performs.
type arith int8

const (
	arNone arith = iota

	arAssign // error unless removed as the leading assignment
	arAdd    // left + right
	arSub    // left - right
	arMul    // left * right
	arDiv    // left / right
	arPow    // left ^ right
	arNeg    // -operand
	arPlus   // operand
	arCall   // fn(operand)
)

// Intrinsic priorities. parenPrio must exceed all others so that everything
// in parentheses binds more tightly than anything outside.
const (
	assignPrio = 0
	sumPrio    = 1
	prodPrio   = 2
	powPrio    = 3
	funcPrio   = 4
	unaryPrio  = 5
	parenPrio  = 10
)

var (
	opAssign = Operator{"=", OpBinary, assignPrio, arAssign, nil}
	opAdd    = Operator{"+", OpBinary, sumPrio, arAdd, nil}
	opSub    = Operator{"-", OpBinary, sumPrio, arSub, nil}
	opMul    = Operator{"*", OpBinary, prodPrio, arMul, nil}
	opDiv    = Operator{"/", OpBinary, prodPrio, arDiv, nil}
	opPow    = Operator{"^", OpBinary, powPrio, arPow, nil}
	opAltMul = Operator{"×", OpBinary, prodPrio, arMul, nil}
	opAltDiv = Operator{"÷", OpBinary, prodPrio, arDiv, nil}
	opNeg    = Operator{"-", OpUnary, unaryPrio, arNeg, nil}
	opPlus   = Operator{"+", OpUnary, unaryPrio, arPlus, nil}
)

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result is nil.
func binop(text string) *Operator {
	switch text {
	case "=":
		return &opAssign
	case "+":
		return &opAdd
	case "-":
		return &opSub
	case "*":
		return &opMul
	case "/":
		return &opDiv
	case "^":
		return &opPow
	case "×":
		return &opAltMul
	case "÷":
		return &opAltDiv
	default:
		return nil
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result is nil.
func unop(text string) *Operator {
	switch text {
	case "+":
		return &opPlus
	case "-":
		return &opNeg
	default:
		return nil
	}
}

// BinaryOperator returns the binary operator with the given symbol, or nil
// if there is none.
func BinaryOperator(sym string) *Operator {
	return binop(sym)
}

// UnaryOperator returns the unary operator with the given symbol, or nil if
// there is none.
func UnaryOperator(sym string) *Operator {
	return unop(sym)
}

// FuncOperator creates an operator which applies fn to its operand. fn must
// be callable with one argument.
func FuncOperator(name string, fn Func) *Operator {
	return &Operator{Name: name, Kind: OpFunction, Prio: funcPrio, op: arCall, fn: fn}
}

// unary sets x to op x.
func unary(op *Operator, x *big.Float) {
	switch op.op {
	case arNeg:
		x.Neg(x)
	case arPlus:
		// do nothing
	default:
		panic("evaluator: invalid unary operator " + op.Name)
	}
}

// binary sets l to l op r. col is the operator's position, for errors.
func binary(op *Operator, col int, l, r *big.Float) error {
	switch op.op {
	case arAssign:
		return &OperatorError{Col: col, Operator: op.Name}
	case arAdd:
		// Guard against inf + -inf.
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return domain(r, op)
		}
		l.Add(l, r)
	case arSub:
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return domain(r, op)
		}
		l.Sub(l, r)
	case arMul:
		// Guard against 0 * inf.
		if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
			return domain(r, op)
		}
		l.Mul(l, r)
	case arDiv:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return domain(r, op)
		}
		l.Quo(l, r)
	case arPow:
		return pow(op, l, r)
	default:
		panic("evaluator: invalid binary operator " + op.Name)
	}
	return nil
}

// pow sets l to l^r.
func pow(op *Operator, l, r *big.Float) error {
	switch {
	case r.Sign() == 0:
		l.SetInt64(1)
	case l.Sign() == 0:
		if r.Sign() > 0 {
			l.SetInt64(0)
		} else {
			l.SetInf(false)
		}
	case l.IsInf() || r.IsInf():
		// bigfloat doesn't deal in infinities, and the results are exact
		// anyway.
		x, _ := l.Float64()
		y, _ := r.Float64()
		l.SetFloat64(math.Pow(x, y))
	case l.Signbit():
		// A negative base needs an integer exponent.
		if !r.IsInt() {
			return domain(l, op)
		}
		n, _ := r.Int(nil)
		odd := n.Bit(0) == 1
		l.Neg(l)
		bigfloat.Pow(l, l, r)
		if odd {
			l.Neg(l)
		}
	default:
		bigfloat.Pow(l, l, r)
	}
	return nil
}

func domain(x *big.Float, op *Operator) error {
	return DomainError{X: new(big.Float).Copy(x), Func: op.Name}
}
