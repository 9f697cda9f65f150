package commands

import (
	"fmt"
	"strings"

	"github.com/XJIeI5/calcengine/internal/calculator"
	"github.com/XJIeI5/calcengine/internal/logging"
	"github.com/XJIeI5/calcengine/internal/parser"
	"github.com/spf13/cobra"
)

func newEvalCommand(a *app) *cobra.Command {
	var postfix bool

	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate a single expression starting from 0",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := calculator.New(calculator.WithLogger(logging.StandardLogger()))
			tokens, err := parser.Tokenize(strings.Join(args, " "))
			if err != nil {
				return err
			}

			if postfix {
				out, err := calc.InfixToPostfix(tokens)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
				return nil
			}

			result, err := calc.AcceptInputArray(tokens)
			if err == nil {
				err = calculator.CheckResult(result)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&postfix, "postfix", "p", false, "print the postfix form instead of the result")
	return cmd
}
