package op

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{5, "5"},
		{-7, "-7"},
		{0.1 + 0.2, "0.3"},
		{13.335, "13.335"},
		{1729.6896, "1729.6896"},
		{1e15, "1E+15"},
		{1e-6, "1E-06"},
		{1e-5, "0.00001"},
		{-1e15, "-1E+15"},
		{1e14, "100000000000000"},
		{float32(math.Inf(1)), "Infinity"},
		{float32(math.Inf(-1)), "-Infinity"},
		{float32(math.NaN()), "NaN"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatNumber(c.in), "FormatNumber(%v)", c.in)
	}
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber("2.5")
	assert.True(t, ok)
	assert.Equal(t, float32(2.5), v)

	v, ok = ParseNumber("-3")
	assert.True(t, ok)
	assert.Equal(t, float32(-3), v)

	v, ok = ParseNumber("1e100")
	assert.True(t, ok)
	assert.True(t, math.IsInf(float64(v), 1))

	for _, s := range []string{"", "+", "2..5", "abc"} {
		_, ok := ParseNumber(s)
		assert.False(t, ok, s)
	}
}

func TestOperatorTables(t *testing.T) {
	p, ok := Precedence("^")
	assert.True(t, ok)
	assert.Equal(t, 4, p)

	pm, _ := Precedence("*")
	pa, _ := Precedence("+")
	assert.Greater(t, pm, pa)

	left, ok := LeftAssociative("^")
	assert.True(t, ok)
	assert.False(t, left)

	_, ok = Precedence("%")
	assert.False(t, ok)

	assert.Nil(t, GetBinary("("))
	assert.Equal(t, float32(8), GetBinary("^").Exec(2, 3))
	assert.True(t, math.IsInf(float64(GetBinary("/").Exec(1, 0)), 1))
	assert.True(t, HaveOperand(")"))
	assert.False(t, HaveOperand("%"))

	open, ok := GetOperand("(").(OrderOperand)
	assert.True(t, ok)
	assert.True(t, open.IsStart())
	_, ok = GetOperand("+").(OrderOperand)
	assert.False(t, ok)
}
