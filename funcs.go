package evaluator

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. Functions callable with one
// argument are operators in expressions, e.g. "sqrt 2" or "sqrt(2)".
// Functions callable only with no arguments are constants, evaluated when the
// expression is scanned.
type Func interface {
	// Call evaluates the function. The function arguments are passed in invoc.
	// The function may but generally should not look up variables. The
	// function must set r to its result and should not use the value of r
	// otherwise. invoc has a length for which CanCall returned true. Call may
	// modify the elements of invoc.
	Call(ev *Evaluator, invoc []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// The evaluator only ever asks about 0 and 1.
	CanCall(n int) bool
}

var globalfuncs = map[string]Func{
	"exp": Monadic(bigfloat.Exp),
	"ln":  Monadic(positive(bigfloat.Log)),
	"log": Monadic(positive(func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		in.SetFloat64(10).SetPrec(out.Prec())
		bigfloat.Log(in, in)
		return out.Quo(out, in)
	})),
	"sqrt": Monadic((*big.Float).Sqrt),
	"abs":  Monadic((*big.Float).Abs),

	// trig, computed in float64 and rounded to the evaluator's precision
	"cos":   Monadic(float64Func(math.Cos)),
	"sin":   Monadic(float64Func(math.Sin)),
	"tan":   Monadic(float64Func(math.Tan)),
	"acos":  Monadic(float64Func(math.Acos)),
	"asin":  Monadic(float64Func(math.Asin)),
	"atan":  Monadic(float64Func(math.Atan)),
	"cosh":  Monadic(float64Func(math.Cosh)),
	"sinh":  Monadic(float64Func(math.Sinh)),
	"tanh":  Monadic(float64Func(math.Tanh)),
	"acosh": Monadic(float64Func(math.Acosh)),
	"asinh": Monadic(float64Func(math.Asinh)),
	"atanh": Monadic(float64Func(math.Atanh)),

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// positive guards a logarithm against arguments it can't take.
func positive(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		switch {
		case in.Signbit():
			panic(DomainError{X: new(big.Float).Copy(in)})
		case in.Sign() == 0:
			return out.SetInf(true)
		}
		return f(out, in)
	}
}

// float64Func adapts a float64 function. NaN results panic with a
// DomainError.
func float64Func(f func(float64) float64) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		x, _ := in.Float64()
		y := f(x)
		if math.IsNaN(y) {
			panic(DomainError{X: new(big.Float).Copy(in)})
		}
		return out.SetFloat64(y)
	}
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ev *Evaluator, invoc []*big.Float, r *big.Float) (err error) {
	in := invoc[0]
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = r.(error) // panic if not error
		if errors.As(err, &DomainError{}) {
			return
		}
		if errors.As(err, &big.ErrNaN{}) {
			err = DomainError{X: new(big.Float).Copy(in)}
			return
		}
		panic(err)
	}()
	r.SetPrec(ev.Prec())
	m.f(r, in)
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with an error of
// type big.ErrNaN or DomainError, or that unwraps to one.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ev *Evaluator, invoc []*big.Float, r *big.Float) (err error) {
	r.SetPrec(ev.Prec())
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// DomainError is an error returned when a function or operator is applied
// to arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
