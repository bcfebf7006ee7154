package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/chris/coin-ledger/pkg/catalog"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rewardsCmd)
	rewardsCmd.AddCommand(rewardsListCmd)
	rewardsCmd.AddCommand(rewardsImportCmd)

	rewardsListCmd.Flags().StringP("category", "c", "", "Only list rewards in this category")
	rewardsListCmd.Flags().Bool("available", false, "Only list rewards that can be redeemed")
	rewardsImportCmd.Flags().StringP("file", "f", "", "Catalog TOML file (defaults to the built-in demo catalog)")
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Manage the reward catalog",
}

var rewardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog rewards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter models.RewardFilter
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			filter.Category = &category
		}
		if available, _ := cmd.Flags().GetBool("available"); available {
			filter.Available = &available
		}

		rewards, err := app.Service.ListRewards(cmd.Context(), filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOST\tCATEGORY\tAVAILABLE")
		for _, r := range rewards {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%t\n", r.Id, r.Name, r.Cost, r.Category, r.IsAvailable)
		}
		return w.Flush()
	},
}

var rewardsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create catalog rewards that do not exist yet",
	Long: `Import rewards from a TOML catalog. Rewards whose ID already exists are
left untouched, so the command can be rerun safely.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		cat := catalog.Default()
		if file != "" {
			var err error
			if cat, err = catalog.Load(file); err != nil {
				return err
			}
		}

		result, err := cat.ImportRewards(cmd.Context(), app.Store)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %d rewards, skipped %d existing\n", len(result.Created), len(result.Skipped))
		if len(result.Created) > 0 {
			fmt.Fprintf(out, "  created: %s\n", strings.Join(result.Created, ", "))
		}
		return nil
	},
}
