package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/XJIeI5/calcengine/internal/custom"
	"github.com/spf13/cobra"
)

func newOpsCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the custom operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := custom.DefaultRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tARGS\tDESCRIPTION")
			for _, code := range r.Codes() {
				o, _ := r.Lookup(code)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", code, o.Name(), strings.Join(o.ArgumentLabels(), " "), o.Description())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if verbose {
				for _, code := range r.Codes() {
					o, _ := r.Lookup(code)
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %s\n", code, o.Instructions())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print usage instructions")
	return cmd
}
