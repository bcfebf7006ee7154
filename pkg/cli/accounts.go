package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsCreateCmd)
	accountsCmd.AddCommand(accountsShowCmd)
	accountsCmd.AddCommand(accountsListCmd)

	accountsCreateCmd.Flags().StringP("username", "u", "", "Display name (defaults to the user ID)")
	accountsShowCmd.Flags().IntP("limit", "n", 10, "Number of recent transactions to show")
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage coin accounts",
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create USER_ID",
	Short: "Open an account with the starting balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			username = args[0]
		}

		account, err := app.Service.CreateAccount(cmd.Context(), args[0], username)
		if err != nil {
			return fmt.Errorf("create account %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created account %s with %d coins\n", account.UserId, account.Balance)
		return nil
	},
}

var accountsShowCmd = &cobra.Command{
	Use:   "show USER_ID",
	Short: "Show an account's balance and recent transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		account, err := app.Service.GetAccount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		history, err := app.Service.History(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)  balance: %d  xp: %d  level: %d\n\n", account.UserId, account.Username, account.Balance, account.Xp, account.Level)

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tCHANGE\tBALANCE\tSOURCE\tDESCRIPTION")
		for _, tx := range history {
			fmt.Fprintf(w, "%s\t%+d\t%d\t%s\t%s\n", tx.CreatedAt.Format("2006-01-02 15:04:05"), tx.Delta(), tx.BalanceAfter, tx.Source, tx.Description)
		}
		return w.Flush()
	},
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := app.Service.ListAccounts(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USER\tUSERNAME\tBALANCE")
		for _, a := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%d\n", a.UserId, a.Username, a.Balance)
		}
		return w.Flush()
	},
}
