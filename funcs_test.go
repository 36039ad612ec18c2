package evaluator_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshini-Jesi/Evaluator"
)

type hypot struct{}

func (hypot) CanCall(n int) bool {
	return n == 1
}

func (hypot) Call(ev *evaluator.Evaluator, invoc []*big.Float, r *big.Float) error {
	// Hypotenuse of a right triangle with legs x and the variable leg.
	leg, err := ev.GetVariable("leg")
	if err != nil {
		return err
	}
	x := invoc[0]
	x.Mul(x, x)
	leg.Mul(leg, leg)
	r.Sqrt(x.Add(x, leg))
	return nil
}

func ExampleFunc() {
	ev := evaluator.New(
		evaluator.Prec(32),
		evaluator.WithFunc("hypot", hypot{}),
		evaluator.WithFunc("half", evaluator.Monadic(func(out, in *big.Float) *big.Float {
			return out.Quo(in, big.NewFloat(2))
		})),
		evaluator.WithFunc("answer", evaluator.Niladic(func(out *big.Float) *big.Float {
			return out.SetInt64(42)
		})),
	)
	for _, src := range []string{"hypot 3", "leg = 4", "hypot 3", "half answer", "-half(answer + 2)"} {
		r, err := ev.Evaluate(src)
		fmt.Println(r, err)
	}

	// Output:
	// <nil> undefined variable: "leg"
	// 4 <nil>
	// 5 <nil>
	// 21 <nil>
	// -22 <nil>
}

func TestFuncs(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"exp 0", 1},
		{"ln 1", 0},
		{"ln 0", math.Inf(-1)},
		{"log 100", 2},
		{"sqrt 2 ^ 2", 2},
		{"abs(-2.5)", 2.5},
		{"cos 0", 1},
		{"sin 0", 0},
		{"tan 0", 0},
		{"acos 1", 0},
		{"asin 0", 0},
		{"atan 0", 0},
		{"cosh 0", 1},
		{"sinh 0", 0},
		{"tanh 0", 0},
		{"acosh 1", 0},
		{"asinh 0", 0},
		{"atanh 0", 0},
		{"sqrt inf", math.Inf(1)},
	}
	ev := evaluator.New(evaluator.Prec(64))
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			r, err := ev.Evaluate(c.src)
			require.NoError(t, err)
			f, _ := r.Float64()
			assert.InDelta(t, c.want, f, 1e-15)
		})
	}
}

func TestFuncsList(t *testing.T) {
	ev := evaluator.New()
	fns := ev.Funcs()
	for _, name := range []string{"abs", "e", "exp", "ln", "log", "pi", "sin", "sqrt"} {
		assert.Contains(t, fns, name)
	}
	assert.IsIncreasing(t, fns)

	ev = ev.Clone(evaluator.WithFunc("sin", nil), evaluator.WithFuncs(map[string]evaluator.Func{"cos": nil}))
	assert.NotContains(t, ev.Funcs(), "sin")
	assert.NotContains(t, ev.Funcs(), "cos")
	r, err := ev.Evaluate("sin = 2")
	require.NoError(t, err)
	assert.Equal(t, "2", r.String())
}

func TestDomainError(t *testing.T) {
	ev := evaluator.New()
	_, err := ev.Evaluate("2 * sqrt(1 - 5)")
	var de evaluator.DomainError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "sqrt", de.Func)
	assert.Equal(t, "-4", de.X.String())
	assert.Equal(t, "-4 outside domain of sqrt", err.Error())
}
