package main

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshini-Jesi/Evaluator"
)

func testSession(conf *Config) (*session, *bytes.Buffer) {
	var out bytes.Buffer
	s := newSession(evaluator.New(evaluator.Prec(conf.Prec)), &out, conf)
	s.errc.DisableColor()
	return s, &out
}

func TestSessionDo(t *testing.T) {
	conf := defaultConfig()
	s, out := testSession(&conf)
	for _, line := range []string{"x = 2 * (3 + 4)", "", "  x - 4  ", ":vars"} {
		assert.True(t, s.do(line))
	}
	assert.Equal(t, "14\n10\nx = 14\n", out.String())
	assert.Zero(t, s.failed)
	assert.False(t, s.do(":quit"))
}

func TestSessionError(t *testing.T) {
	conf := defaultConfig()
	s, out := testSession(&conf)
	assert.True(t, s.do("1 + (2"))
	assert.True(t, s.do("y"))
	assert.Equal(t, 2, s.failed)
	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1 + (2", lines[0])
	assert.Equal(t, "    ^", lines[1])
	assert.Contains(t, lines[2], "invalid parenthesization")
	assert.Equal(t, `error: undefined variable: "y"`, lines[3])
}

func TestSessionEcho(t *testing.T) {
	conf := defaultConfig()
	conf.Echo = true
	conf.Format = "%.3f"
	s, out := testSession(&conf)
	s.do("3 * -2")
	assert.Equal(t, "3 2 u- * : -6.000\n", out.String())
}

func TestSessionJSON(t *testing.T) {
	conf := defaultConfig()
	conf.JSON = true
	conf.Echo = true
	s, out := testSession(&conf)
	s.do("x = 1 + 2")
	s.do("1 2")

	dec := json.NewDecoder(out)
	var r result
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, result{Expr: "x = 1 + 2", Value: "3", Postfix: "1 2 +"}, r)
	r = result{}
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "1 2", r.Expr)
	assert.Empty(t, r.Value)
	assert.Contains(t, r.Error, "too many operands")
	assert.Equal(t, 4, r.Col)
}

func TestCompletions(t *testing.T) {
	ev := evaluator.New(evaluator.SetVar("sum", big.NewFloat(1)))
	cases := []struct {
		line  string
		pos   int
		word  string
		names []string
	}{
		{"sq", 2, "sq", []string{"rt"}},
		{"1 + su", 6, "su", []string{"m"}},
		{"si", 2, "si", []string{"n", "nh"}},
		{"sin", 3, "sin", []string{"h"}},
		{"1 + ", 4, "", nil},
		{"sq + 1", 2, "sq", []string{"rt"}},
		{":v", 2, ":v", []string{"ars"}},
		{":", 1, ":", []string{"quit", "vars"}},
	}
	for _, c := range cases {
		word, names := completions(ev, []rune(c.line), c.pos)
		assert.Equal(t, c.word, word, c.line)
		assert.Equal(t, c.names, names, c.line)
	}
}
