package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/scriplabs/scrip/internal/amount"
	"github.com/scriplabs/scrip/internal/output"
	"github.com/scriplabs/scrip/internal/service/confirmation"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	offerBaseAsset   string
	offerQuoteAsset  string
	offerAmount      string
	offerPrice       string
	offerFee         string
	offerBuy         bool
	offerSell        bool
	offerOrderBookID uint64
)

// offerCmd is the parent command for orderbook offers.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Manage orderbook offers",
}

// offerCreateCmd places a new offer.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var offerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Place an orderbook offer",
	Long: `Place a buy or sell offer on the asset exchange.

Balances for both assets are resolved first; a missing balance is created
automatically before the offer is submitted.`,
	Example: `  scrip offer create --base SCR --quote USD --amount 10 --price 2 --buy
  scrip offer create --base SCR --quote USD --amount 10 --price 2 --sell --fee 0.5`,
	RunE: runOfferCreate,
}

func runOfferCreate(cmd *cobra.Command, _ []string) error {
	if offerBuy == offerSell {
		return scriperr.WithSuggestion(scriperr.ErrInvalidInput,
			"specify exactly one of --buy or --sell")
	}

	amt, err := parseAmountFlag("amount", offerAmount)
	if err != nil {
		return err
	}
	price, err := parseAmountFlag("price", offerPrice)
	if err != nil {
		return err
	}

	fee := decimal.Zero
	if offerFee != "" {
		if fee, err = amount.Parse(offerFee); err != nil {
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

	receipt, err := sess.orch.Confirm(ctx, confirmation.CreateOffer{
		BaseAsset:   offerBaseAsset,
		QuoteAsset:  offerQuoteAsset,
		Amount:      amt,
		Price:       price,
		Fee:         fee,
		IsBuy:       offerBuy,
		OrderBookID: offerOrderBookID,
	})
	if err != nil {
		return err
	}

	return formatter.Print(output.NewReceiptView(receipt))
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(offerCmd)
	offerCmd.AddCommand(offerCreateCmd)

	offerCreateCmd.Flags().StringVar(&offerBaseAsset, "base", "", "base asset code (required)")
	offerCreateCmd.Flags().StringVar(&offerQuoteAsset, "quote", "", "quote asset code (required)")
	offerCreateCmd.Flags().StringVar(&offerAmount, "amount", "", "base amount (required)")
	offerCreateCmd.Flags().StringVar(&offerPrice, "price", "", "price per unit in quote asset (required)")
	offerCreateCmd.Flags().StringVar(&offerFee, "fee", "", "offer fee in quote asset")
	offerCreateCmd.Flags().BoolVar(&offerBuy, "buy", false, "place a buy offer")
	offerCreateCmd.Flags().BoolVar(&offerSell, "sell", false, "place a sell offer")
	offerCreateCmd.Flags().Uint64Var(&offerOrderBookID, "order-book", 0, "orderbook ID")

	_ = offerCreateCmd.MarkFlagRequired("base")
	_ = offerCreateCmd.MarkFlagRequired("quote")
	_ = offerCreateCmd.MarkFlagRequired("amount")
	_ = offerCreateCmd.MarkFlagRequired("price")
}
