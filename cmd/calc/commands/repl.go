package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/XJIeI5/calcengine/internal/calculator"
	"github.com/XJIeI5/calcengine/internal/custom"
	"github.com/XJIeI5/calcengine/internal/logging"
	op "github.com/XJIeI5/calcengine/internal/operation"
	"github.com/XJIeI5/calcengine/internal/parser"
	"github.com/spf13/cobra"
)

func newReplCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively, chaining from the current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := calculator.New(calculator.WithLogger(logging.StandardLogger()))
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), calc, a.cfg.Session.ResetOnError)
		},
	}
}

// runRepl reads one expression per line until an empty line or EOF.
func runRepl(in io.Reader, out io.Writer, calc *calculator.Calculator, resetOnError bool) error {
	help := replHelp(calc.Registry())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\n%s\n\n%s", op.FormatNumber(calc.CurrentValue()), help)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil
		}

		err := evalLine(calc, line)
		if err != nil {
			if resetOnError {
				calc.SetCurrentValue(0)
			}
			fmt.Fprintf(out, "Syntax Error: %s\n", err)
		}
	}
}

func evalLine(calc *calculator.Calculator, line string) error {
	tokens, err := parser.Tokenize(line)
	if err != nil {
		return err
	}
	result, err := calc.AcceptInputArray(tokens)
	if err != nil {
		return err
	}
	return calculator.CheckResult(result)
}

func replHelp(r *custom.Registry) string {
	var b strings.Builder
	b.WriteString("Enter an expression.\n")
	var funcs []string
	for _, code := range r.Codes() {
		o, _ := r.Lookup(code)
		if code == "C" {
			continue
		}
		funcs = append(funcs, fmt.Sprintf("%s <%s>", o.Name(), code))
	}
	if len(funcs) > 0 {
		fmt.Fprintf(&b, "Available Custom Functions: %s\n", strings.Join(funcs, ", "))
	}
	if _, ok := r.Lookup("C"); ok {
		b.WriteString("Enter <C> to clear current value.\n")
	}
	b.WriteString("Press <Enter> without entering anything to exit.\n")
	return b.String()
}
