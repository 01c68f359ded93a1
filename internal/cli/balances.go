package cli

import (
	"github.com/spf13/cobra"

	"github.com/scriplabs/scrip/internal/output"
)

// balancesCmd lists the account's balances.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show account balances",
	Long: `Show all balances of the signing account.

Amounts are displayed at the network precision reported by the platform.`,
	Example: `  scrip balances
  scrip balances -o json`,
	RunE: runBalances,
}

func runBalances(cmd *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := contextWithTimeout(cmd, apiTimeout())
	defer cancel()

	info, err := sess.account.FetchNetworkInfo(ctx)
	if err != nil {
		return err
	}

	balances, err := sess.account.Balances(ctx)
	if err != nil {
		return err
	}

	view := output.NewBalanceListView(sess.keypair.Address(), balances, info.Precision)
	return formatter.Print(view)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(balancesCmd)
}
