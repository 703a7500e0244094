package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"go-attendance/internal/balance"
	"go-attendance/internal/config"
	"go-attendance/internal/employee"
	"go-attendance/internal/shared/connection"
	"go-attendance/internal/shared/contextutil"

	"github.com/spf13/cobra"
)

const operatorRole = "operator"

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.AddCommand(balanceGetCmd)
	balanceCmd.AddCommand(balanceSetCmd)

	balanceSetCmd.Flags().StringP("type", "t", "", "Leave type to allocate (annual, sick, casual, ...)")
	balanceSetCmd.Flags().Float64("total", -1, "Total days for the year, in half-day steps")
	_ = balanceSetCmd.MarkFlagRequired("type")
	_ = balanceSetCmd.MarkFlagRequired("total")
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Inspect or allocate leave balances",
}

var balanceGetCmd = &cobra.Command{
	Use:   "get EMPLOYEE_ID",
	Short: "Show an employee's balances",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalanceGet,
}

var balanceSetCmd = &cobra.Command{
	Use:   "set EMPLOYEE_ID",
	Short: "Set an employee's yearly allocation for one leave type",
	Long: `Set the total allocation for one leave type. Days already used are kept,
so lowering the total below the used figure leaves a negative remainder.`,
	Args: cobra.ExactArgs(1),
	RunE: runBalanceSet,
}

// operatorAccess grants the CLI administrator rights; whoever runs it
// already holds the database credentials.
type operatorAccess struct{}

func (operatorAccess) IsAdmin(string) bool { return true }

func runBalanceGet(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openBalanceService()
	if err != nil {
		return err
	}
	defer closeDB()

	resp, err := svc.GetBalance(cmd.Context(), operator(), args[0])
	if err != nil {
		return err
	}
	return printBalance(cmd.OutOrStdout(), resp)
}

func runBalanceSet(cmd *cobra.Command, args []string) error {
	leaveType, _ := cmd.Flags().GetString("type")
	total, _ := cmd.Flags().GetFloat64("total")

	svc, closeDB, err := openBalanceService()
	if err != nil {
		return err
	}
	defer closeDB()

	resp, err := svc.SetAllocation(cmd.Context(), operator(), args[0], balance.SetBalanceRequest{
		LeaveType: leaveType,
		Total:     &total,
	})
	if err != nil {
		return err
	}
	return printBalance(cmd.OutOrStdout(), resp)
}

func operator() contextutil.Actor {
	return contextutil.Actor{Role: operatorRole}
}

func openBalanceService() (balance.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return newBalanceService(cfg)
}

func newBalanceService(cfg *config.Config) (balance.Service, func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, 1)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	svc := balance.NewService(
		balance.NewRepository(gormDB),
		balance.NewPolicy(cfg.Leave.BalanceGatedTypes, cfg.Leave.DefaultTotals),
		employee.NewService(employee.NewRepository(gormDB), nil),
		operatorAccess{},
	)
	return svc, func() { _ = sqlDB.Close() }, nil
}

func printBalance(w io.Writer, resp balance.BalanceResponse) error {
	types := make([]string, 0, len(resp.Balances))
	for t := range resp.Balances {
		types = append(types, t)
	}
	slices.Sort(types)

	fmt.Fprintf(w, "employee %s\n", resp.EmployeeID)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tTOTAL\tUSED\tREMAINING\tGATED")
	for _, t := range types {
		e := resp.Balances[t]
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%t\n", t, e.Total, e.Used, e.Remaining, e.Gated)
	}
	return tw.Flush()
}
