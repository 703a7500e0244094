package cli

import (
	"fmt"

	"go-attendance/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	migrateUpCmd.Flags().Int("steps", 0, "Apply at most N migrations (0 applies all)")
	migrateDownCmd.Flags().Int("steps", 1, "Roll back N migrations")
	migrateDownCmd.Flags().Bool("all", false, "Roll back every migration")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return runMigrate(cmd, app.MigrateUp, steps)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		all, _ := cmd.Flags().GetBool("all")
		if all {
			steps = 0
		} else if steps <= 0 {
			return fmt.Errorf("--steps must be positive, use --all to roll back everything")
		}
		return runMigrate(cmd, app.MigrateDown, steps)
	},
}

func runMigrate(cmd *cobra.Command, direction app.MigrationDirection, steps int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := app.RunMigrations(cfg, direction, steps); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", direction)
	return nil
}
