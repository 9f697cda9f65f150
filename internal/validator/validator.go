// Package validator rejects malformed calculator input before it reaches
// any arithmetic.
package validator

import (
	"strconv"
	"strings"

	"github.com/XJIeI5/calcengine/internal/calcerr"
	op "github.com/XJIeI5/calcengine/internal/operation"
)

const acceptedChars = "0123456789" + op.Symbols + "."

// ContainsLeadingZeros reports whether value starts with "00". Values shorter
// than two characters never do.
func ContainsLeadingZeros(value string) bool {
	if len(value) < 2 {
		return false
	}
	return value[:2] == "00"
}

// CompareToZero reports whether value is positive, or non-negative when
// orEqualTo is set. Unparsable values compare false.
func CompareToZero(value string, orEqualTo bool) bool {
	v, ok := op.ParseNumber(value)
	if !ok {
		return false
	}
	if orEqualTo {
		return v >= 0
	}
	return v > 0
}

func ValidateInputCount(inputs []string, expectedCount int) error {
	if len(inputs) != expectedCount {
		return calcerr.InvalidInput("The input array should be of length %d.", expectedCount)
	}
	return nil
}

func ValidateInputSign(inputs []string, allowZero bool) error {
	for _, input := range inputs {
		if CompareToZero(input, allowZero) {
			continue
		}
		if allowZero {
			return calcerr.InvalidInput("All non-zero elements must be positive.")
		}
		return calcerr.InvalidInput("All elements must be positive.")
	}
	return nil
}

func ValidateInputInteger(input string) error {
	if _, err := strconv.Atoi(input); err != nil {
		return calcerr.InvalidInput("The input must be an integer.")
	}
	return nil
}

// ValidateNonZeroInputCount counts the inputs that are not literally "0".
func ValidateNonZeroInputCount(inputs []string, expectedCount int) error {
	var nonZero int
	for _, input := range inputs {
		if input != "0" {
			nonZero++
		}
	}
	if nonZero != expectedCount {
		return calcerr.InvalidInput("The number of non-zero elements in the input array should be %d.", expectedCount)
	}
	return nil
}

// ValidateOperatorOrder rejects adjacent operators. A ")" may be followed by
// any operator and a "(" may follow any operator.
func ValidateOperatorOrder(infixExp []string) error {
	if len(infixExp) == 0 {
		return calcerr.InvalidInput("Infix expression is empty.")
	}
	for i := 0; i < len(infixExp)-1; i++ {
		a, b := infixExp[i], infixExp[i+1]
		if !isOperator(a) || !isOperator(b) {
			continue
		}
		if a != op.ClosedParen.Symbol() && b != op.OpenParen.Symbol() {
			return calcerr.InvalidInput("Infix expression %s contains consecutive operators.", strings.Join(infixExp, " "))
		}
	}
	return nil
}

func ValidateInputCharacters(inputs []string) error {
	if len(inputs) == 0 {
		return calcerr.InvalidInput("Expression is empty.")
	}
	for _, r := range strings.Join(inputs, "") {
		if !strings.ContainsRune(acceptedChars, r) {
			return calcerr.InvalidInput("%c is not a valid token.", r)
		}
	}
	return nil
}

func isOperator(token string) bool {
	return op.HaveOperand(token)
}
