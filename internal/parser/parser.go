// Package parser splits a line of calculator input into the tokens the
// evaluation engine consumes.
package parser

import (
	"bufio"
	"strings"
	"unicode"

	"github.com/XJIeI5/calcengine/internal/calcerr"
	op "github.com/XJIeI5/calcengine/internal/operation"
)

// GetStringNumber returns the leading run of digits and dots in expr.
func GetStringNumber(expr string) string {
	var result strings.Builder

	sc := bufio.NewScanner(strings.NewReader(expr))
	sc.Split(bufio.ScanRunes)
	for sc.Scan() {
		if r := sc.Text(); isNumberRune(r) {
			result.WriteString(r)
			continue
		}
		break
	}

	return result.String()
}

// GetCommand returns the leading run of letters in expr.
func GetCommand(expr string) string {
	end := strings.IndexFunc(expr, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return expr
	}
	return expr[:end]
}

// Tokenize splits line into numbers, operator symbols and command codes.
// Whitespace is optional between tokens. A "-" directly followed by a number
// is a sign when no operand precedes it, so "3*-5" is 3, *, -5.
func Tokenize(line string) ([]string, error) {
	var (
		tokens []string
		skip   int
	)

	// operandBefore reports whether the last token can be a left operand.
	operandBefore := func() bool {
		if len(tokens) == 0 {
			return false
		}
		last := tokens[len(tokens)-1]
		if last == op.ClosedParen.Symbol() {
			return true
		}
		_, ok := op.ParseNumber(last)
		return ok
	}

	for i, r := range line {
		if skip > 0 {
			skip--
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		switch {
		case isNumberRune(string(r)): // PARSE NUMBER
			num := GetStringNumber(line[i:])
			tokens = append(tokens, num)
			skip = len(num) - 1
		case r == '-' && !operandBefore() && startsNumber(line[i+1:]):
			num := "-" + GetStringNumber(line[i+1:])
			tokens = append(tokens, num)
			skip = len(num) - 1
		case unicode.IsLetter(r): // PARSE COMMAND
			cmd := GetCommand(line[i:])
			tokens = append(tokens, cmd)
			skip = len([]rune(cmd)) - 1
		default: // PARSE OPERAND
			operand := op.GetOperand(string(r))
			if operand == nil {
				return nil, calcerr.InvalidInput("%c is not a valid token.", r)
			}
			tokens = append(tokens, operand.Symbol())
		}
	}

	if len(tokens) == 0 {
		return nil, calcerr.InvalidInput("Expression is empty.")
	}
	return tokens, nil
}

func isNumberRune(r string) bool {
	return r == "." || (len(r) == 1 && r[0] >= '0' && r[0] <= '9')
}

func startsNumber(s string) bool {
	return s != "" && isNumberRune(s[:1])
}
