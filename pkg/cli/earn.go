package cli

import (
	"fmt"
	"strconv"

	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(earnCmd)

	earnCmd.Flags().StringP("source", "s", models.SourceBonus, "Transaction source")
	earnCmd.Flags().StringP("description", "d", "Bonus coins", "Transaction description")
	earnCmd.Flags().StringP("key", "k", "", "Idempotency key; reruns with the same key credit once")
}

var earnCmd = &cobra.Command{
	Use:   "earn USER_ID AMOUNT",
	Short: "Credit coins to an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("amount must be a whole number: %w", err)
		}
		source, _ := cmd.Flags().GetString("source")
		description, _ := cmd.Flags().GetString("description")
		key, _ := cmd.Flags().GetString("key")

		tx, err := app.Service.Earn(cmd.Context(), ledger.EarnRequest{
			UserID:         args[0],
			Amount:         amount,
			Source:         source,
			Description:    description,
			IdempotencyKey: key,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Credited %d coins to %s (transaction %s, balance %d)\n", tx.Amount, tx.UserId, tx.Id, tx.BalanceAfter)
		return nil
	},
}
