// Package calcerr holds the failure kinds shared by the validator, the
// evaluation engine and the custom operations.
package calcerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers wrong argument counts, signs, non-integers and
	// empty expressions.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidExpression covers mismatched parentheses and operator/operand
	// imbalance.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrInvalidTriangle is returned when the given sides cannot form a right
	// triangle.
	ErrInvalidTriangle = errors.New("invalid triangle")
	// ErrInvalidToken is returned for a token that is neither an operator nor
	// an operand.
	ErrInvalidToken = errors.New("invalid token")
)

// Result anomalies. The engine never returns these; callers get them from
// calculator.CheckResult.
var (
	ErrInfinity           = errors.New("infinity")
	ErrNaN                = errors.New("not a number")
	ErrScientificNotation = errors.New("scientific notation")
)

// Error is a calculator failure with a human readable message. It unwraps to
// its kind so errors.Is(err, ErrInvalidInput) works.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) error {
	return newf(ErrInvalidInput, format, args...)
}

func InvalidExpression(format string, args ...any) error {
	return newf(ErrInvalidExpression, format, args...)
}

func InvalidTriangle(format string, args ...any) error {
	return newf(ErrInvalidTriangle, format, args...)
}

func InvalidToken(format string, args ...any) error {
	return newf(ErrInvalidToken, format, args...)
}

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrInvalidExpression, "invalid_expression"},
	{ErrInvalidTriangle, "invalid_triangle"},
	{ErrInvalidToken, "invalid_token"},
	{ErrInfinity, "infinity"},
	{ErrNaN, "nan"},
	{ErrScientificNotation, "scientific_notation"},
}

// KindOf returns a stable name for the kind of err, or "" if err is not a
// calculator failure.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// IsCalculatorError reports whether err is one of the kinds above.
func IsCalculatorError(err error) bool {
	return KindOf(err) != ""
}
