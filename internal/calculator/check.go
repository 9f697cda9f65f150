package calculator

import (
	"strings"

	"github.com/XJIeI5/calcengine/internal/calcerr"
)

// CheckResult reports results a display cannot show: infinities, NaN and
// numbers in scientific notation. The engine returns such results as plain
// text; callers decide whether to treat them as failures.
func CheckResult(result string) error {
	switch {
	case strings.Contains(result, "Infinity"):
		return &calcerr.Error{
			Kind: calcerr.ErrInfinity,
			Msg:  "Infinity Error: The expression evaluates to Infinity.",
		}
	case result == "NaN":
		return &calcerr.Error{
			Kind: calcerr.ErrNaN,
			Msg:  "Not a Number Error: The expression evaluates to NaN.",
		}
	case strings.Contains(result, "E"):
		return &calcerr.Error{
			Kind: calcerr.ErrScientificNotation,
			Msg:  "Scientific Notation Error: The expression evaluates to a number in scientific notation, which this calculator does not support.",
		}
	}
	return nil
}
