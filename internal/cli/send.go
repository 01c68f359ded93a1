package cli

import (
	"github.com/spf13/cobra"

	"github.com/scriplabs/scrip/internal/output"
	"github.com/scriplabs/scrip/internal/service/confirmation"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	sendBalanceID       string
	sendRecipient       string
	sendAmount          string
	sendFeeFixed        string
	sendFeePercent      string
	sendRecvFeeFixed    string
	sendRecvFeePercent  string
	sendPayRecipientFee bool
	sendDescription     string
)

// sendCmd confirms and submits a payment.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a payment",
	Long: `Send a payment from one of your balances to a recipient account.

The sender fee and recipient fee are each composed of a fixed part plus a
percentage of the amount. With --pay-recipient-fee the sender covers both.`,
	Example: `  scrip send --balance B... --to G... --amount 10
  scrip send --balance B... --to G... --amount 10 --fee-fixed 0.1 --pay-recipient-fee`,
	RunE: runSend,
}

func runSend(cmd *cobra.Command, _ []string) error {
	amt, err := parseAmountFlag("amount", sendAmount)
	if err != nil {
		return err
	}
	senderFee, err := parseFeeFlags(sendFeeFixed, sendFeePercent)
	if err != nil {
		return err
	}
	recipientFee, err := parseFeeFlags(sendRecvFeeFixed, sendRecvFeePercent)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := contextWithTimeout(cmd, apiTimeout())
	defer cancel()

	receipt, err := sess.orch.Confirm(ctx, confirmation.SendPayment{
		SenderBalanceID:        sendBalanceID,
		RecipientAccountID:     sendRecipient,
		Amount:                 amt,
		SenderFee:              senderFee,
		RecipientFee:           recipientFee,
		SourcePaysRecipientFee: sendPayRecipientFee,
		Description:            sendDescription,
	})
	if err != nil {
		return err
	}

	return formatter.Print(output.NewReceiptView(receipt))
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendBalanceID, "balance", "", "sender balance ID (required)")
	sendCmd.Flags().StringVar(&sendRecipient, "to", "", "recipient account ID (required)")
	sendCmd.Flags().StringVar(&sendAmount, "amount", "", "amount to send (required)")
	sendCmd.Flags().StringVar(&sendFeeFixed, "fee-fixed", "", "fixed sender fee")
	sendCmd.Flags().StringVar(&sendFeePercent, "fee-percent", "", "percent sender fee")
	sendCmd.Flags().StringVar(&sendRecvFeeFixed, "recipient-fee-fixed", "", "fixed recipient fee")
	sendCmd.Flags().StringVar(&sendRecvFeePercent, "recipient-fee-percent", "", "percent recipient fee")
	sendCmd.Flags().BoolVar(&sendPayRecipientFee, "pay-recipient-fee", false, "sender pays the recipient fee")
	sendCmd.Flags().StringVar(&sendDescription, "description", "", "payment subject")

	_ = sendCmd.MarkFlagRequired("balance")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("amount")
}
