package commands

import (
	"github.com/XJIeI5/calcengine/internal/config"
	"github.com/XJIeI5/calcengine/internal/logging"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	cfg        *config.Config
	closeLog   func()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "calc",
		Short:         "Chained infix calculator with custom operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			closeLog, err := logging.Init(cfg.Logger)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.closeLog = closeLog
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path")

	rootCmd.AddCommand(
		newReplCommand(a),
		newEvalCommand(a),
		newOpsCommand(),
		newServeCommand(a),
	)

	return rootCmd
}
