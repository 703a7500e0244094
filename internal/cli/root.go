// Package cli is the operator command line: schema migrations, ledger
// maintenance and outbox draining without going through the HTTP API.
package cli

import (
	"go-attendance/internal/config"
	"go-attendance/internal/shared/apperror"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "leavectl",
	Short:         "Operate the leave service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, err := zap.NewDevelopment()
		if !verbose {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		apperror.Init()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")
}

// Execute runs the command tree against os.Args.
func Execute() error {
	defer func() { _ = zap.L().Sync() }()
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}
