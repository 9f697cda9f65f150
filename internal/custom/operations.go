package custom

import (
	"math"
	"strconv"

	"github.com/XJIeI5/calcengine/internal/calcerr"
	op "github.com/XJIeI5/calcengine/internal/operation"
	"github.com/XJIeI5/calcengine/internal/validator"
)

const inchesToCentimeters = 2.54

// CLEAR
type Clear struct{ info }

func NewClear() *Clear {
	return &Clear{info{
		name:         "Clear",
		description:  "Resets the current value.",
		instructions: "Enter C to reset the current value to 0.",
	}}
}

func (c *Clear) Execute(inputs []string) (string, error) {
	return "0", nil
}

// FACTORIAL
type Factorial struct{ info }

func NewFactorial() *Factorial {
	return &Factorial{info{
		name:           "Factorial",
		description:    "Computes n! for a non-negative integer n.",
		instructions:   "Enter F followed by a whole number, e.g. F 5.",
		argumentLabels: []string{"n"},
	}}
}

// Execute computes n!. Large n overflows int64 and wraps; from 66! on the
// wrapped product is 0.
func (f *Factorial) Execute(inputs []string) (string, error) {
	if err := validator.ValidateInputCount(inputs, 1); err != nil {
		return "", err
	}
	if err := validator.ValidateInputSign(inputs, true); err != nil {
		return "", err
	}
	if err := validator.ValidateInputInteger(inputs[0]); err != nil {
		return "", err
	}

	n, _ := strconv.Atoi(inputs[0])
	if n == 0 {
		return "1", nil
	}
	var result int64 = 1
	for i := int64(2); i <= int64(n) && result != 0; i++ {
		result *= i
	}
	return strconv.FormatInt(result, 10), nil
}

// METRIC CONVERTER
type MetricConverter struct{ info }

func NewMetricConverter() *MetricConverter {
	return &MetricConverter{info{
		name:           "Metric Converter",
		description:    "Converts a length in inches to centimeters.",
		instructions:   "Enter M followed by a length in inches, e.g. M 5.25.",
		argumentLabels: []string{"inches"},
		allowsDecimal:  true,
	}}
}

func (m *MetricConverter) Execute(inputs []string) (string, error) {
	if err := validator.ValidateInputCount(inputs, 1); err != nil {
		return "", err
	}
	if err := validator.ValidateInputSign(inputs, true); err != nil {
		return "", err
	}

	inches, _ := op.ParseNumber(inputs[0])
	return op.FormatNumber(inches * inchesToCentimeters), nil
}

// PYTHAGOREAN SOLVE
type PythagoreanSolve struct{ info }

func NewPythagoreanSolve() *PythagoreanSolve {
	return &PythagoreanSolve{info{
		name:           "Pythagorean Solve",
		description:    "Finds the missing side of a right triangle.",
		instructions:   "Enter P followed by sides a, b and hypotenuse c, with 0 for the unknown side, e.g. P 6 8 0.",
		argumentLabels: []string{"a", "b", "c"},
		allowsDecimal:  true,
	}}
}

// Execute solves for the side given as "0". Exactly one side must be unknown.
func (p *PythagoreanSolve) Execute(inputs []string) (string, error) {
	if err := validator.ValidateInputCount(inputs, 3); err != nil {
		return "", err
	}
	if err := validator.ValidateNonZeroInputCount(inputs, 2); err != nil {
		return "", err
	}
	if err := validator.ValidateInputSign(inputs, true); err != nil {
		return "", err
	}

	a, _ := op.ParseNumber(inputs[0])
	b, _ := op.ParseNumber(inputs[1])
	c, _ := op.ParseNumber(inputs[2])

	switch {
	case a == 0:
		if b > c {
			return "", calcerr.InvalidTriangle("Length of leg b is greater than length of hypotenuse.")
		}
		return op.FormatNumber(sqrt(c*c - b*b)), nil
	case b == 0:
		if a > c {
			return "", calcerr.InvalidTriangle("Length of leg a is greater than length of hypotenuse.")
		}
		return op.FormatNumber(sqrt(c*c - a*a)), nil
	default:
		return op.FormatNumber(sqrt(a*a + b*b)), nil
	}
}

func sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
