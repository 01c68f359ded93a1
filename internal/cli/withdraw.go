package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scriplabs/scrip/internal/output"
	"github.com/scriplabs/scrip/internal/service/confirmation"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	withdrawBalanceID  string
	withdrawAmount     string
	withdrawAddress    string
	withdrawFeeFixed   string
	withdrawFeePercent string
)

// withdrawCmd confirms and submits a withdrawal request.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw to an external address",
	Long: `Request a withdrawal from one of your balances to an external address.

The total charged is the amount plus the composed sender fee; it is shown
before submission.`,
	Example: `  scrip withdraw --balance B... --amount 25 --address ext-addr
  scrip withdraw --balance B... --amount 25 --address ext-addr --fee-fixed 1`,
	RunE: runWithdraw,
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	amt, err := parseAmountFlag("amount", withdrawAmount)
	if err != nil {
		return err
	}
	fee, err := parseFeeFlags(withdrawFeeFixed, withdrawFeePercent)
	if err != nil {
		return err
	}

	intent := confirmation.Withdraw{
		SenderBalanceID:  withdrawBalanceID,
		Amount:           amt,
		RecipientAddress: withdrawAddress,
		SenderFee:        fee,
	}
	out(os.Stderr, "Total charged (amount + fee): %s\n", intent.Total().String())

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := contextWithTimeout(cmd, apiTimeout())
	defer cancel()

	receipt, err := sess.orch.Confirm(ctx, intent)
	if err != nil {
		return err
	}

	return formatter.Print(output.NewReceiptView(receipt))
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(withdrawCmd)

	withdrawCmd.Flags().StringVar(&withdrawBalanceID, "balance", "", "source balance ID (required)")
	withdrawCmd.Flags().StringVar(&withdrawAmount, "amount", "", "amount to withdraw (required)")
	withdrawCmd.Flags().StringVar(&withdrawAddress, "address", "", "external destination address (required)")
	withdrawCmd.Flags().StringVar(&withdrawFeeFixed, "fee-fixed", "", "fixed sender fee")
	withdrawCmd.Flags().StringVar(&withdrawFeePercent, "fee-percent", "", "percent sender fee")

	_ = withdrawCmd.MarkFlagRequired("balance")
	_ = withdrawCmd.MarkFlagRequired("amount")
	_ = withdrawCmd.MarkFlagRequired("address")
}
