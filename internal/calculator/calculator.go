// Package calculator is the evaluation engine: it keeps the running value,
// converts infix token sequences to postfix and evaluates postfix sequences.
package calculator

import (
	"io"
	"strings"

	"github.com/XJIeI5/calcengine/internal/calcerr"
	"github.com/XJIeI5/calcengine/internal/custom"
	op "github.com/XJIeI5/calcengine/internal/operation"
	"github.com/XJIeI5/calcengine/internal/validator"
	"github.com/informitas/stack"
	"github.com/sirupsen/logrus"
)

// Calculator holds the current value between calls. It is not safe for
// concurrent use; serialize access when sharing one.
type Calculator struct {
	currentValue float32
	registry     *custom.Registry
	log          logrus.FieldLogger
}

type Option func(*Calculator)

// WithRegistry replaces the default custom operation registry.
func WithRegistry(r *custom.Registry) Option {
	return func(c *Calculator) { c.registry = r }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Calculator) { c.log = l }
}

// WithCurrentValue starts the calculator from v instead of 0.
func WithCurrentValue(v float32) Option {
	return func(c *Calculator) { c.currentValue = v }
}

func New(opts ...Option) *Calculator {
	c := &Calculator{registry: custom.DefaultRegistry()}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c
}

func (c *Calculator) CurrentValue() float32 {
	return c.currentValue
}

// SetCurrentValue overwrites the running value, e.g. to reset it after a
// failed evaluation.
func (c *Calculator) SetCurrentValue(v float32) {
	c.currentValue = v
}

func (c *Calculator) Registry() *custom.Registry {
	return c.registry
}

// AcceptInputArray evaluates tokens. A leading command code dispatches the
// remaining tokens to that custom operation; anything else is treated as an
// infix expression. The current value only changes when the call succeeds.
func (c *Calculator) AcceptInputArray(tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", calcerr.InvalidInput("Expression is empty.")
	}

	var (
		result string
		err    error
	)
	if operation, ok := c.registry.Lookup(tokens[0]); ok {
		c.log.WithFields(logrus.Fields{
			"operation": operation.Name(),
			"args":      len(tokens) - 1,
		}).Debug("dispatch custom operation")
		result, err = operation.Execute(tokens[1:])
	} else {
		var postfix []string
		postfix, err = c.InfixToPostfix(tokens)
		if err == nil {
			result, err = c.EvaluatePostfixExpression(postfix)
		}
	}
	if err != nil {
		c.log.WithError(err).WithField("expr", strings.Join(tokens, " ")).Debug("evaluation failed")
		return "", err
	}

	v, ok := op.ParseNumber(result)
	if !ok {
		return "", calcerr.InvalidToken("%s is not a number.", result)
	}
	c.currentValue = v
	return result, nil
}

// InfixToPostfix reorders an infix token sequence into postfix order with the
// shunting-yard algorithm. An expression that opens with a binary operator
// uses the current value as its left operand.
func (c *Calculator) InfixToPostfix(infix []string) ([]string, error) {
	if err := validator.ValidateInputCharacters(infix); err != nil {
		return nil, err
	}
	if err := validator.ValidateOperatorOrder(infix); err != nil {
		return nil, err
	}

	operators := stack.NewStack[string]()
	postfix := make([]string, 0, len(infix)+1)

	for i, token := range infix {
		if _, ok := op.ParseNumber(token); ok {
			postfix = append(postfix, token)
			continue
		}

		oper := op.GetOperand(token)
		if oper == nil {
			return nil, calcerr.InvalidToken("%s is neither an operator nor an operand.", token)
		}

		switch o := oper.(type) {
		case op.OrderOperand:
			if o.IsStart() {
				operators.Push(token)
				continue
			}
			for !operators.IsEmpty() {
				top, _ := operators.Top()
				if top == op.OpenParen.Symbol() {
					break
				}
				popped, _ := operators.Pop()
				postfix = append(postfix, popped)
			}
			if operators.IsEmpty() {
				return nil, calcerr.InvalidExpression("Infix expression has mismatched parentheses.")
			}
			operators.Pop()
		case op.BinaryOperand:
			prec, ok := op.Precedence(token)
			leftAssoc, hasAssoc := op.LeftAssociative(token)
			if !ok || !hasAssoc {
				return nil, calcerr.InvalidToken("%s has no precedence.", token)
			}
			if i == 0 {
				postfix = append(postfix, op.FormatNumber(c.currentValue))
			}
			for !operators.IsEmpty() {
				top, _ := operators.Top()
				topPrec, _ := op.Precedence(top)
				if topPrec > prec || (topPrec == prec && leftAssoc) {
					popped, _ := operators.Pop()
					postfix = append(postfix, popped)
					continue
				}
				break
			}
			operators.Push(token)
		}
	}

	for !operators.IsEmpty() {
		popped, _ := operators.Pop()
		if _, ok := op.GetOperand(popped).(op.OrderOperand); ok {
			return nil, calcerr.InvalidExpression("Infix expression has mismatched parentheses.")
		}
		postfix = append(postfix, popped)
	}
	return postfix, nil
}

// EvaluatePostfixExpression evaluates a postfix token sequence. It does not
// touch the current value. Division by zero is not an error here; the result
// text is "Infinity" or "NaN".
func (c *Calculator) EvaluatePostfixExpression(postfix []string) (string, error) {
	if len(postfix) == 0 {
		return "", calcerr.InvalidInput("Expression is empty.")
	}

	operands := stack.NewStack[float32]()
	for _, token := range postfix {
		if v, ok := op.ParseNumber(token); ok {
			operands.Push(v)
			continue
		}

		oper := op.GetBinary(token)
		if oper == nil {
			return "", calcerr.InvalidToken("%s is neither an operator nor an operand.", token)
		}
		if operands.Size() < 2 {
			return "", calcerr.InvalidExpression("Operator %s is missing an operand.", token)
		}
		right, _ := operands.Pop()
		left, _ := operands.Pop()
		operands.Push(oper.Exec(left, right))
	}

	if operands.Size() != 1 {
		return "", calcerr.InvalidExpression("Not all numbers are involved in mathematical operations.")
	}
	result, _ := operands.Pop()
	return op.FormatNumber(result), nil
}
