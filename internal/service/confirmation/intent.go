package confirmation

import (
	"github.com/shopspring/decimal"

	"github.com/scriplabs/scrip/internal/amount"
	"github.com/scriplabs/scrip/internal/api"
	"github.com/scriplabs/scrip/internal/keyid"
	"github.com/scriplabs/scrip/internal/tx"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// Fee holds the fee terms of one side of an operation: a flat component
// plus a percentage of the operation amount.
type Fee struct {
	Fixed   decimal.Decimal
	Percent decimal.Decimal
}

// Total composes the fee once for the given amount: fixed + amount*percent/100.
func (f Fee) Total(amt decimal.Decimal) decimal.Decimal {
	return f.Fixed.Add(amt.Mul(f.Percent).Div(decimal.NewFromInt(100)))
}

// Intent is one user-level operation the orchestrator can confirm. The
// four implementations below are the only ones; the unexported methods
// keep the pipeline hooks out of the public contract.
type Intent interface {
	// Kind returns a short name for logging.
	Kind() string

	// decode parses the intent's identifier strings into state.ids.
	// Runs before anything touches the network.
	decode(st *state) error

	// assets lists asset codes whose balances must be resolved (created
	// if missing) before validation.
	assets() []string

	// validate checks the intent's preconditions against the resolved
	// state. A violation is terminal; nothing is submitted.
	validate(st *state) error

	// assemble produces the wire-ready operations at network precision.
	assemble(st *state) ([]tx.Operation, error)
}

// state carries one attempt's accumulated pipeline data between hooks.
type state struct {
	info     *api.NetworkInfo
	ids      map[string][]byte
	balances map[string]api.Balance
}

func newState() *state {
	return &state{ids: make(map[string][]byte)}
}

// units converts a decimal to fixed-point at the network precision.
func (s *state) units(d decimal.Decimal) int64 {
	return amount.ToUnits(d, s.info.Precision)
}

// feeTerms converts composed fee terms to their wire representation.
func (s *state) feeTerms(f Fee, amt decimal.Decimal) tx.PaymentFee {
	return tx.PaymentFee{
		Fixed:    s.units(f.Fixed),
		MaxTotal: s.units(f.Total(amt)),
	}
}

// CreateOffer places a new orderbook offer. Balances for both assets are
// resolved before validation and created when missing.
type CreateOffer struct {
	BaseAsset   string
	QuoteAsset  string
	Amount      decimal.Decimal
	Price       decimal.Decimal
	Fee         decimal.Decimal
	IsBuy       bool
	OrderBookID uint64
}

// Kind implements Intent.
func (CreateOffer) Kind() string { return "create_offer" }

func (CreateOffer) decode(*state) error { return nil }

func (o CreateOffer) assets() []string { return []string{o.BaseAsset, o.QuoteAsset} }

func (o CreateOffer) validate(st *state) error {
	quote := o.Price.Mul(o.Amount)
	if !quote.IsPositive() {
		return scriperr.ErrQuoteNotPositive
	}

	if o.IsBuy {
		// The buyer is charged the quote amount plus the fee.
		total := quote.Add(o.Fee)
		if total.GreaterThan(st.balances[o.QuoteAsset].Available) {
			return insufficientBalance(o.QuoteAsset)
		}
		return nil
	}

	// The seller must receive something after the fee and must hold the
	// base amount being sold.
	if !quote.Sub(o.Fee).IsPositive() {
		return scriperr.ErrQuoteNotPositive
	}
	if o.Amount.GreaterThan(st.balances[o.BaseAsset].Available) {
		return insufficientBalance(o.BaseAsset)
	}
	return nil
}

func (o CreateOffer) assemble(st *state) ([]tx.Operation, error) {
	base, err := keyid.DecodeBalanceID("base_balance", st.balances[o.BaseAsset].BalanceID)
	if err != nil {
		return nil, err
	}
	quote, err := keyid.DecodeBalanceID("quote_balance", st.balances[o.QuoteAsset].BalanceID)
	if err != nil {
		return nil, err
	}

	return []tx.Operation{&tx.ManageOffer{
		BaseBalance:  base,
		QuoteBalance: quote,
		Amount:       st.units(o.Amount),
		Price:        st.units(o.Price),
		Fee:          st.units(o.Fee),
		IsBuy:        o.IsBuy,
		OrderBookID:  o.OrderBookID,
	}}, nil
}

// SaleInvest invests into a sale: a buy offer on the sale's orderbook. A
// non-zero PrevOfferID replaces an earlier investment by canceling it and
// placing the new offer in the same transaction.
type SaleInvest struct {
	BaseBalanceID  string
	QuoteBalanceID string
	BaseAmount     decimal.Decimal
	Price          decimal.Decimal
	Fee            decimal.Decimal
	PrevOfferID    uint64
	OrderBookID    uint64
}

// Kind implements Intent.
func (SaleInvest) Kind() string { return "sale_invest" }

func (s SaleInvest) decode(st *state) error {
	base, err := keyid.DecodeBalanceID("base_balance", s.BaseBalanceID)
	if err != nil {
		return err
	}
	quote, err := keyid.DecodeBalanceID("quote_balance", s.QuoteBalanceID)
	if err != nil {
		return err
	}
	st.ids["base_balance"] = base
	st.ids["quote_balance"] = quote
	return nil
}

func (SaleInvest) assets() []string { return nil }

func (s SaleInvest) validate(*state) error {
	if !s.Price.Mul(s.BaseAmount).IsPositive() {
		return scriperr.ErrQuoteNotPositive
	}
	return nil
}

func (s SaleInvest) assemble(st *state) ([]tx.Operation, error) {
	var ops []tx.Operation

	// Cancel before replace, in one transaction, so the previous
	// investment can never coexist with the new one.
	if s.PrevOfferID != 0 {
		ops = append(ops, &tx.ManageOffer{
			BaseBalance:  st.ids["base_balance"],
			QuoteBalance: st.ids["quote_balance"],
			Amount:       0,
			IsBuy:        true,
			OfferID:      s.PrevOfferID,
			OrderBookID:  s.OrderBookID,
		})
	}

	ops = append(ops, &tx.ManageOffer{
		BaseBalance:  st.ids["base_balance"],
		QuoteBalance: st.ids["quote_balance"],
		Amount:       st.units(s.BaseAmount),
		Price:        st.units(s.Price),
		Fee:          st.units(s.Fee),
		IsBuy:        true,
		OrderBookID:  s.OrderBookID,
	})
	return ops, nil
}

// SendPayment moves an amount from the sender's balance to a recipient
// account.
type SendPayment struct {
	SenderBalanceID        string
	RecipientAccountID     string
	Amount                 decimal.Decimal
	SenderFee              Fee
	RecipientFee           Fee
	SourcePaysRecipientFee bool
	Description            string
}

// Kind implements Intent.
func (SendPayment) Kind() string { return "send_payment" }

func (p SendPayment) decode(st *state) error {
	balance, err := keyid.DecodeBalanceID("sender_balance", p.SenderBalanceID)
	if err != nil {
		return err
	}
	account, err := keyid.DecodeAccountID("recipient_account", p.RecipientAccountID)
	if err != nil {
		return err
	}
	st.ids["sender_balance"] = balance
	st.ids["recipient_account"] = account
	return nil
}

func (SendPayment) assets() []string { return nil }

func (p SendPayment) validate(*state) error {
	if !p.Amount.IsPositive() {
		return scriperr.ErrNotEnoughData
	}
	return nil
}

func (p SendPayment) assemble(st *state) ([]tx.Operation, error) {
	return []tx.Operation{&tx.Payment{
		SourceBalance:     st.ids["sender_balance"],
		Destination:       st.ids["recipient_account"],
		Amount:            st.units(p.Amount),
		SourceFee:         st.feeTerms(p.SenderFee, p.Amount),
		DestinationFee:    st.feeTerms(p.RecipientFee, p.Amount),
		SourcePaysDestFee: p.SourcePaysRecipientFee,
		Subject:           p.Description,
	}}, nil
}

// Withdraw requests a withdrawal from the sender's balance to an external
// address.
type Withdraw struct {
	SenderBalanceID  string
	Amount           decimal.Decimal
	RecipientAddress string
	SenderFee        Fee
}

// Kind implements Intent.
func (Withdraw) Kind() string { return "withdraw" }

func (w Withdraw) decode(st *state) error {
	balance, err := keyid.DecodeBalanceID("sender_balance", w.SenderBalanceID)
	if err != nil {
		return err
	}
	st.ids["sender_balance"] = balance
	return nil
}

func (Withdraw) assets() []string { return nil }

func (w Withdraw) validate(*state) error {
	if !w.Amount.IsPositive() {
		return scriperr.ErrNotEnoughData
	}
	if w.RecipientAddress == "" {
		return scriperr.ErrNotEnoughData
	}
	return nil
}

// Total returns the full amount charged to the sender: amount plus the
// composed sender fee.
func (w Withdraw) Total() decimal.Decimal {
	return w.Amount.Add(w.SenderFee.Total(w.Amount))
}

func (w Withdraw) assemble(st *state) ([]tx.Operation, error) {
	return []tx.Operation{&tx.CreateWithdrawal{
		Balance: st.ids["sender_balance"],
		Amount:  st.units(w.Amount),
		Fee:     st.units(w.SenderFee.Total(w.Amount)),
		Address: w.RecipientAddress,
	}}, nil
}

func insufficientBalance(asset string) error {
	return scriperr.WithDetails(scriperr.ErrInsufficientBalance, map[string]string{"asset": asset})
}
