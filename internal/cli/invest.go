package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/scriplabs/scrip/internal/amount"
	"github.com/scriplabs/scrip/internal/output"
	"github.com/scriplabs/scrip/internal/service/confirmation"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	investBaseBalance  string
	investQuoteBalance string
	investAmount       string
	investPrice        string
	investFee          string
	investPrevOfferID  uint64
	investOrderBookID  uint64
)

// investCmd confirms and submits a sale investment.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "Invest into a sale",
	Long: `Invest into a token sale by placing a buy offer on the sale's orderbook.

With --prev-offer the earlier investment is canceled and replaced in the
same transaction, so the two can never coexist.`,
	Example: `  scrip invest --base-balance B... --quote-balance B... --amount 50 --price 3 --order-book 4
  scrip invest --base-balance B... --quote-balance B... --amount 80 --price 3 --order-book 4 --prev-offer 777`,
	RunE: runInvest,
}

func runInvest(cmd *cobra.Command, _ []string) error {
	amt, err := parseAmountFlag("amount", investAmount)
	if err != nil {
		return err
	}
	price, err := parseAmountFlag("price", investPrice)
	if err != nil {
		return err
	}

	fee := decimal.Zero
	if investFee != "" {
		if fee, err = amount.Parse(investFee); err != nil {
			return err
		}
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := contextWithTimeout(cmd, apiTimeout())
	defer cancel()

	receipt, err := sess.orch.Confirm(ctx, confirmation.SaleInvest{
		BaseBalanceID:  investBaseBalance,
		QuoteBalanceID: investQuoteBalance,
		BaseAmount:     amt,
		Price:          price,
		Fee:            fee,
		PrevOfferID:    investPrevOfferID,
		OrderBookID:    investOrderBookID,
	})
	if err != nil {
		return err
	}

	return formatter.Print(output.NewReceiptView(receipt))
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(investCmd)

	investCmd.Flags().StringVar(&investBaseBalance, "base-balance", "", "base balance ID (required)")
	investCmd.Flags().StringVar(&investQuoteBalance, "quote-balance", "", "quote balance ID (required)")
	investCmd.Flags().StringVar(&investAmount, "amount", "", "base amount to invest (required)")
	investCmd.Flags().StringVar(&investPrice, "price", "", "sale price per unit (required)")
	investCmd.Flags().StringVar(&investFee, "fee", "", "investment fee")
	investCmd.Flags().Uint64Var(&investPrevOfferID, "prev-offer", 0, "previous offer ID to replace")
	investCmd.Flags().Uint64Var(&investOrderBookID, "order-book", 0, "sale orderbook ID")

	_ = investCmd.MarkFlagRequired("base-balance")
	_ = investCmd.MarkFlagRequired("quote-balance")
	_ = investCmd.MarkFlagRequired("amount")
	_ = investCmd.MarkFlagRequired("price")
}
