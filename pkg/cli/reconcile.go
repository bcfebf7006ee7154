package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check every balance against its transaction history",
	Long: `Recompute each account's balance from its transactions and report accounts
where the two disagree. Exits non-zero when any discrepancy is found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := app.Service.Reconcile(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checked %d accounts\n", report.AccountsChecked)
		for _, id := range report.Skipped {
			fmt.Fprintf(out, "  skipped %s (still changing)\n", id)
		}
		for _, d := range report.Discrepancies {
			fmt.Fprintf(out, "  %s: balance %d, history sums to %d\n", d.UserID, d.Balance, d.HistorySum)
		}

		if len(report.Discrepancies) > 0 {
			return fmt.Errorf("%d accounts failed reconciliation", len(report.Discrepancies))
		}
		fmt.Fprintln(out, "All balances match their history")
		return nil
	},
}
