package evaluator

import (
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/edwingeng/deque"
	"github.com/qiniu/log"
	"github.com/tevino/abool/v2"
	"golang.org/x/text/unicode/norm"
)

// Evaluator evaluates expressions and holds the variables they assign. It is
// not safe to use an Evaluator concurrently; doing so may panic.
type Evaluator struct {
	names map[string]*big.Float
	nums  map[string]*big.Float
	funcs map[string]Func
	prec  uint

	// tokens buffers the tokens of the expression being evaluated.
	tokens deque.Deque
	rs     resolver
	// postfix is the postfix form of the last successful evaluation.
	postfix string
	busy    *abool.AtomicBool
}

// maxNums bounds the cache of parsed number literals.
const maxNums = 1024

// New creates a new evaluator. If no precision is given, the default is 64.
func New(opts ...Option) *Evaluator {
	ev := Evaluator{nums: make(map[string]*big.Float), funcs: globalfuncs, prec: 64}
	return ev.Clone(opts...)
}

// Evaluate evaluates a single expression, which may begin with an assignment
// like "x = ...". If evaluation succeeds and the expression is an
// assignment, the result is stored under the assigned name. If evaluation
// fails, the result is nil and no variables change.
func (ev *Evaluator) Evaluate(text string) (*big.Float, error) {
	return ev.Eval(strings.NewReader(text))
}

// Eval evaluates an expression read from src to its end. See Evaluate.
func (ev *Evaluator) Eval(src io.RuneScanner) (*big.Float, error) {
	return ev.EvalTokens(lex(src, ev))
}

// EvalTokens evaluates an expression produced by a TokenSource. See
// Evaluate.
func (ev *Evaluator) EvalTokens(src TokenSource) (*big.Float, error) {
	if !ev.busy.SetToIf(false, true) {
		panic("evaluator: Evaluate during Evaluate")
	}
	defer ev.busy.UnSet()
	r, name, err := ev.run(src)
	if err != nil {
		log.Debugf("evaluator: %v", err)
		return nil, err
	}
	if name != "" {
		ev.store(name, r)
		log.Debugf("evaluator: %s = %s", name, r.Text('g', 10))
	}
	ev.postfix = ev.rs.String()
	return r, nil
}

// run buffers the tokens of src, strips a leading assignment, and resolves
// the rest. The second result is the assigned name, if any.
func (ev *Evaluator) run(src TokenSource) (*big.Float, string, error) {
	for !ev.tokens.Empty() {
		ev.tokens.PopFront()
	}
	ev.rs.reset()

	end := 0
	for {
		tok := src.Next()
		if tok.Kind == KindEnd {
			end = tok.Pos
			break
		}
		if tok.Kind == KindError {
			if tok.Err == nil {
				return nil, "", &EvalError{Col: tok.Pos, Text: tok.String(), Err: ErrUnknownToken}
			}
			return nil, "", tok.Err
		}
		ev.tokens.PushBack(tok)
	}

	// Check whether this is a variable assignment.
	var name string
	if ev.tokens.Len() > 2 {
		first := ev.tokens.PopFront().(Token)
		if second := ev.tokens.Front().(Token); first.Kind == KindVariable && isAssign(second) {
			ev.tokens.PopFront()
			name = first.Text
		} else {
			ev.tokens.PushFront(first)
		}
	}

	for !ev.tokens.Empty() {
		tok := ev.tokens.PopFront().(Token)
		if err := ev.rs.process(tok); err != nil {
			return nil, "", err
		}
	}
	r, err := ev.rs.finish(end)
	if err != nil {
		return nil, "", err
	}
	return r, name, nil
}

// isAssign reports whether tok is the binary = operator.
func isAssign(tok Token) bool {
	return tok.Kind == KindOperator && tok.Op != nil && tok.Op.Kind == OpBinary && tok.Op.op == arAssign
}

// GetVariable returns a copy of the value of a variable. If there is no such
// variable, the error is a *NameError.
func (ev *Evaluator) GetVariable(name string) (*big.Float, error) {
	if v := ev.Lookup(name); v != nil {
		return v, nil
	}
	return nil, &NameError{Name: name}
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable, then the result is nil. Names are compared in NFC form, as the
// lexer scans them.
func (ev *Evaluator) Lookup(name string) *big.Float {
	v := ev.names[norm.NFC.String(name)]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Set sets the value of a variable. Returns ev for chaining. Calling Set
// while the evaluator is evaluating an expression panics.
func (ev *Evaluator) Set(name string, value *big.Float) *Evaluator {
	if ev.busy.IsSet() {
		panic("evaluator: Set on in-use evaluator")
	}
	ev.store(name, value)
	log.Debugf("evaluator: set %s", name)
	return ev
}

func (ev *Evaluator) store(name string, value *big.Float) {
	if ev.names == nil {
		ev.names = make(map[string]*big.Float)
	}
	ev.names[norm.NFC.String(name)] = new(big.Float).SetPrec(ev.prec).Set(value)
}

// Assignable reports whether name scans as a variable in expressions, i.e.
// whether a value stored under it can be referenced.
func (ev *Evaluator) Assignable(name string) bool {
	name = norm.NFC.String(name)
	switch name {
	case "", "inf", "Inf":
		return false
	}
	if ev.funcs[name] != nil {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (r == '.' || unicode.IsDigit(r) || unicode.IsMark(r)):
		default:
			return false
		}
	}
	return true
}

// Vars returns the names of all variables, sorted.
func (ev *Evaluator) Vars() []string {
	names := make([]string, 0, len(ev.names))
	for k := range ev.names {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Funcs returns the names of all functions and constants, sorted.
func (ev *Evaluator) Funcs() []string {
	names := make([]string, 0, len(ev.funcs))
	for k, fn := range ev.funcs {
		if fn != nil {
			names = append(names, k)
		}
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Postfix returns the postfix form of the last expression evaluated
// successfully, excluding any assignment: operands in the order they were
// pushed and operators in the order they were applied, separated by spaces.
// Unary operators are written with a u prefix, so "3 * -x" gives "3 x u- *".
func (ev *Evaluator) Postfix() string {
	return ev.postfix
}

// Prec returns the precision to which values are computed.
func (ev *Evaluator) Prec() uint {
	return ev.prec
}

// Clone creates a copy of an evaluator, including its variables, and applies
// options to it.
func (ev *Evaluator) Clone(opts ...Option) *Evaluator {
	n := Evaluator{
		nums:   make(map[string]*big.Float, len(ev.nums)),
		names:  make(map[string]*big.Float, len(ev.names)),
		funcs:  make(map[string]Func, len(ev.funcs)),
		prec:   ev.prec,
		tokens: deque.NewDeque(),
		busy:   abool.NewBool(false),
	}
	n.rs.ev = &n
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Copy numbers only if the new precision is no higher than the old, so
	// that we always use the precision we need.
	if n.prec <= ev.prec {
		for k, v := range ev.nums {
			n.nums[k] = new(big.Float).SetPrec(n.prec).Set(v)
		}
	}
	// Copy variables. (We always need a copy in case of assignment.) If we
	// have the same precision, we can just copy pointers, because stored
	// values are replaced, never modified.
	if n.prec == ev.prec {
		for name, val := range ev.names {
			n.names[name] = val
		}
	} else {
		for name, val := range ev.names {
			n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
		}
	}
	for k, fn := range ev.funcs {
		n.funcs[k] = fn
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.store(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.store(k, v)
			}
		case funcopt:
			n.setFunc(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				n.setFunc(k, v)
			}
		case precopt:
			// Already done. Do nothing.
		default:
			panic("evaluator: unknown option type")
		}
	}
	return &n
}

func (ev *Evaluator) setFunc(name string, fn Func) {
	if fn == nil {
		delete(ev.funcs, name)
		return
	}
	ev.funcs[name] = fn
}

// num gets a possibly cached number from its text.
func (ev *Evaluator) num(s string) *big.Float {
	if r := ev.nums[s]; r != nil {
		return r
	}
	if len(ev.nums) >= maxNums {
		ev.nums = make(map[string]*big.Float)
	}
	t := s
	if t == "∞" {
		t = "inf"
	}
	r, _, err := new(big.Float).SetPrec(ev.prec).Parse(t, 0)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// Literals are unsigned, so the exponent's sign decides between
		// underflow and overflow.
		if negexp(t) {
			r = new(big.Float).SetPrec(ev.prec)
		} else {
			r = new(big.Float).SetInf(false)
		}
	default:
		panic("evaluator: invalid number: " + s + " (" + err.Error() + ")")
	}
	ev.nums[s] = r
	return r
}

// negexp reports whether a number literal has a negative exponent.
func negexp(s string) bool {
	i := strings.LastIndexAny(s, "eE")
	return i >= 0 && i+1 < len(s) && s[i+1] == '-'
}

// EvalString is a shortcut to evaluate a string expression with a new
// evaluator using the default functions.
func EvalString(src string, opts ...Option) (*big.Float, error) {
	return New(opts...).Evaluate(src)
}

// NameError is an error from a lookup for a variable that has not been
// assigned.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
