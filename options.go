package evaluator

import "math/big"

// Option is an option used when creating or cloning an evaluator.
type Option interface {
	evOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[string]*big.Float
	precopt uint
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
)

func (varopt) evOption()   {}
func (varsopt) evOption()  {}
func (precopt) evOption()  {}
func (funcopt) evOption()  {}
func (funcsopt) evOption() {}

// SetVar sets the value of a variable in the evaluator.
func SetVar(name string, val *big.Float) Option {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the evaluator.
func SetVars(vars map[string]*big.Float) Option {
	return varsopt(vars)
}

// Prec sets the precision of calculations.
func Prec(prec uint) Option {
	return precopt(prec)
}

// WithFunc sets a function. To disable a function, so that its name is
// scanned as a variable instead, pass nil for fn.
func WithFunc(name string, fn Func) Option {
	return funcopt{name, fn}
}

// WithFuncs sets a group of functions. To disable any function, set it to
// nil.
func WithFuncs(fns map[string]Func) Option {
	return funcsopt(fns)
}

// DisableDefaultFuncs disables all default functions and constants. Their
// names will be scanned as variables instead.
func DisableDefaultFuncs() Option {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}
