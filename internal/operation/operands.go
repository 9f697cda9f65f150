package op

import (
	"errors"
	"math"
	"strconv"
)

var (
	_           Operand
	OpenParen   = openParen{}
	ClosedParen = closeParen{}
	Pow         = pow{}
	Add         = add{}
	Sub         = sub{}
	Mult        = mult{}
	Div         = div{}
)

var Operands = []Operand{OpenParen, ClosedParen, Pow, Mult, Div, Add, Sub}

// Symbols lists every operator symbol accepted in an infix expression.
const Symbols = "()^*/+-"

var precedence = map[string]int{
	Pow.Symbol():       4,
	Mult.Symbol():      3,
	Div.Symbol():       3,
	Add.Symbol():       2,
	Sub.Symbol():       2,
	OpenParen.Symbol(): 1,
}

var leftAssociative = map[string]bool{
	Pow.Symbol():       false,
	Mult.Symbol():      true,
	Div.Symbol():       true,
	Add.Symbol():       true,
	Sub.Symbol():       true,
	OpenParen.Symbol(): true,
}

// Precedence returns the precedence of symbol and whether it has one.
func Precedence(symbol string) (int, bool) {
	p, ok := precedence[symbol]
	return p, ok
}

// LeftAssociative reports whether symbol groups left to right. The second
// result is false when symbol has no associativity entry.
func LeftAssociative(symbol string) (bool, bool) {
	l, ok := leftAssociative[symbol]
	return l, ok
}

func GetOperand(symbol string) Operand {
	for _, oper := range Operands {
		if symbol == oper.Symbol() {
			return oper
		}
	}
	return nil
}

func HaveOperand(symbol string) bool {
	return GetOperand(symbol) != nil
}

// GetBinary returns the arithmetic operator for symbol, or nil.
func GetBinary(symbol string) BinaryOperand {
	if b, ok := GetOperand(symbol).(BinaryOperand); ok {
		return b
	}
	return nil
}

// ParseNumber classifies token as an operand. Out of range values saturate
// to ±Inf or 0 instead of failing.
func ParseNumber(token string) (float32, bool) {
	v, err := strconv.ParseFloat(token, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return float32(v), true
		}
		return 0, false
	}
	return float32(v), true
}

// Bounds of plain decimal output, taken at single precision: float32(1e15)
// is slightly below 1e15.
var (
	minPlain = float64(float32(1e-5))
	maxPlain = float64(float32(1e15))
)

// FormatNumber renders v as its shortest single-precision decimal text.
// Magnitudes below 1e-5 or from 1e15 up use E notation, e.g. "1E+15".
func FormatNumber(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if a := math.Abs(f); a < minPlain || a >= maxPlain {
		return strconv.FormatFloat(f, 'E', -1, 32)
	}
	return strconv.FormatFloat(f, 'f', -1, 32)
}
