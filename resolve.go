package evaluator

import (
	"errors"
	"math/big"
	"strings"
)

// pending is an operator waiting on the operator stack.
type pending struct {
	op *Operator
	// prio is the effective priority, the base priority at the time the
	// operator was scanned plus its intrinsic priority.
	prio int
	// col is the operator's position, for errors.
	col int
}

// resolver holds the state of one evaluation: operands, pending operators,
// and the base priority set by parentheses. Its stacks are reused between
// evaluations.
type resolver struct {
	ev        *Evaluator
	operands  []*big.Float
	operators []pending
	base      int
	// opens holds the positions of unclosed open parens.
	opens []int
	// spare is a value to receive function results, so that a result is
	// never computed in place of its argument.
	spare *big.Float
	// postfix records operands and applied operators in order.
	postfix []string
}

func (rs *resolver) reset() {
	rs.operands = rs.operands[:0]
	rs.operators = rs.operators[:0]
	rs.base = 0
	rs.opens = rs.opens[:0]
	rs.postfix = rs.postfix[:0]
}

// push ensures a settable value on the operand stack.
func (rs *resolver) push() *big.Float {
	if len(rs.operands) < cap(rs.operands) {
		rs.operands = rs.operands[:len(rs.operands)+1]
		if rs.operands[len(rs.operands)-1] == nil {
			rs.operands[len(rs.operands)-1] = new(big.Float)
		}
	} else {
		rs.operands = append(rs.operands, new(big.Float))
	}
	return rs.operands[len(rs.operands)-1].SetPrec(rs.ev.prec)
}

// pop removes the top from the operand stack and returns it. The returned
// value may be modified by future pushes.
func (rs *resolver) pop() *big.Float {
	r := rs.operands[len(rs.operands)-1]
	rs.operands = rs.operands[:len(rs.operands)-1]
	return r
}

// top is a shortcut to get the top element of the operand stack.
func (rs *resolver) top() *big.Float {
	return rs.operands[len(rs.operands)-1]
}

// process dispatches one token.
func (rs *resolver) process(tok Token) error {
	switch tok.Kind {
	case KindNumber:
		if tok.Num == nil {
			break
		}
		rs.push().Set(tok.Num)
		rs.postfix = append(rs.postfix, tok.Text)
		return nil
	case KindVariable:
		v := rs.ev.names[tok.Text]
		if v == nil {
			return &NameError{Name: tok.Text}
		}
		rs.push().Set(v)
		rs.postfix = append(rs.postfix, tok.Text)
		return nil
	case KindOperator:
		if tok.Op == nil {
			break
		}
		p := pending{op: tok.Op, prio: rs.base + tok.Op.Prio, col: tok.Pos}
		for !rs.okToPush(p) {
			if err := rs.apply(); err != nil {
				return err
			}
		}
		rs.operators = append(rs.operators, p)
		return nil
	case KindPunct:
		switch tok.Text {
		case "(":
			rs.base += parenPrio
			rs.opens = append(rs.opens, tok.Pos)
			return nil
		case ")":
			if len(rs.opens) == 0 {
				// The base priority never goes negative.
				return &EvalError{Col: tok.Pos, Text: tok.Text, Err: ErrParenthesis}
			}
			rs.base -= parenPrio
			rs.opens = rs.opens[:len(rs.opens)-1]
			return nil
		}
	case KindNone, KindEnd, KindError:
		// Never dispatched by a correct caller; report below.
	}
	return &EvalError{Col: tok.Pos, Text: tok.String(), Err: ErrUnknownToken}
}

// okToPush reports whether p can go onto the operator stack without first
// applying the operator on top. Prefix operators have nothing to their left
// that they could complete, so they never wait. Otherwise, an operator of
// equal effective priority is applied first, so equal priorities group to
// the left.
func (rs *resolver) okToPush(p pending) bool {
	if len(rs.operators) == 0 || p.op.Prefix() {
		return true
	}
	return rs.operators[len(rs.operators)-1].prio < p.prio
}

// apply pops the top operator and applies it to the top of the operand
// stack.
func (rs *resolver) apply() error {
	p := rs.operators[len(rs.operators)-1]
	rs.operators = rs.operators[:len(rs.operators)-1]
	if len(rs.operands) == 0 {
		return &EvalError{Col: p.col, Text: p.op.Name, Err: ErrTooFewOperands}
	}
	switch p.op.Kind {
	case OpFunction:
		if err := rs.call(p); err != nil {
			return err
		}
	case OpUnary:
		unary(p.op, rs.top())
	case OpBinary:
		if len(rs.operands) < 2 {
			return &EvalError{Col: p.col, Text: p.op.Name, Err: ErrTooFewOperands}
		}
		r := rs.pop()
		if err := binary(p.op, p.col, rs.top(), r); err != nil {
			return err
		}
	default:
		return &EvalError{Col: p.col, Text: p.op.Name, Err: ErrUnknownToken}
	}
	rs.postfix = append(rs.postfix, p.op.String())
	return nil
}

// call applies a function operator to the top of the operand stack.
func (rs *resolver) call(p pending) error {
	x := rs.top()
	r := rs.spare
	if r == nil {
		r = new(big.Float)
	}
	r.SetPrec(rs.ev.prec)
	invoc := []*big.Float{x}
	if err := p.op.fn.Call(rs.ev, invoc, r); err != nil {
		var de DomainError
		if errors.As(err, &de) && de.Func == "" {
			de.Func = p.op.Name
			return de
		}
		return err
	}
	rs.operands[len(rs.operands)-1], rs.spare = r, x
	return nil
}

// finish applies all pending operators and checks that exactly one value
// remains. end is the position of the end of the expression. The result is
// detached from the operand stack.
func (rs *resolver) finish(end int) (*big.Float, error) {
	for len(rs.operators) > 0 {
		if err := rs.apply(); err != nil {
			return nil, err
		}
	}
	switch {
	case len(rs.operators) > 0:
		return nil, &EvalError{Col: end, Err: ErrTooManyOperators}
	case len(rs.operands) > 1:
		return nil, &EvalError{Col: end, Err: ErrTooManyOperands}
	case len(rs.operands) == 0:
		return nil, &EvalError{Col: end, Err: ErrTooFewOperands}
	case rs.base != 0:
		col := end
		if len(rs.opens) > 0 {
			col = rs.opens[len(rs.opens)-1]
		}
		return nil, &EvalError{Col: col, Text: "(", Err: ErrParenthesis}
	}
	r := rs.pop()
	// The result belongs to the caller now.
	rs.operands[:1][0] = nil
	return r, nil
}

// String returns the recorded postfix form.
func (rs *resolver) String() string {
	return strings.Join(rs.postfix, " ")
}
