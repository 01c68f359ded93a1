// Package tx assembles typed operations into a signed transaction
// envelope ready for submission. Amounts, prices, and fees are already
// fixed-point integers at the network precision; this package never
// converts or re-rounds them.
package tx

import (
	"errors"
)

// Operation type tags used on the wire.
const (
	TypePayment          = "payment"
	TypeManageOffer      = "manage_offer"
	TypeCreateWithdrawal = "create_withdrawal"
)

// Validation errors surfaced by Builder.Build.
var (
	ErrNoOperations     = errors.New("transaction has no operations")
	ErrMissingBalance   = errors.New("operation is missing a balance reference")
	ErrMissingAccount   = errors.New("operation is missing an account reference")
	ErrNonPositiveValue = errors.New("operation value must be positive")
	ErrNegativeValue    = errors.New("operation value must not be negative")
	ErrMissingAddress   = errors.New("withdrawal is missing a destination address")
)

// Operation is a single typed action within a transaction.
type Operation interface {
	// Type returns the wire type tag.
	Type() string

	// Validate checks the operation payload for structural defects.
	Validate() error
}

// PaymentFee carries the fixed-point fee terms of one side of a payment.
// MaxTotal is the upper bound actually charged (fixed + percent-derived
// part, composed once by the caller); Fixed is the flat component.
type PaymentFee struct {
	Fixed    int64 `json:"fixed"`
	MaxTotal int64 `json:"max_total"`
}

// Payment moves an amount from a source balance to a destination account.
type Payment struct {
	SourceBalance     []byte     `json:"source_balance"`
	Destination       []byte     `json:"destination"`
	Amount            int64      `json:"amount"`
	SourceFee         PaymentFee `json:"source_fee"`
	DestinationFee    PaymentFee `json:"destination_fee"`
	SourcePaysDestFee bool       `json:"source_pays_dest_fee"`
	Subject           string     `json:"subject,omitempty"`
}

// Type implements Operation.
func (p *Payment) Type() string { return TypePayment }

// Validate implements Operation.
func (p *Payment) Validate() error {
	if len(p.SourceBalance) == 0 {
		return ErrMissingBalance
	}
	if len(p.Destination) == 0 {
		return ErrMissingAccount
	}
	if p.Amount <= 0 {
		return ErrNonPositiveValue
	}
	if p.SourceFee.Fixed < 0 || p.SourceFee.MaxTotal < 0 ||
		p.DestinationFee.Fixed < 0 || p.DestinationFee.MaxTotal < 0 {
		return ErrNegativeValue
	}
	return nil
}

// ManageOffer places, replaces, or cancels an orderbook offer. An offer
// with Amount == 0 cancels the existing offer identified by OfferID.
type ManageOffer struct {
	BaseBalance  []byte `json:"base_balance"`
	QuoteBalance []byte `json:"quote_balance"`
	Amount       int64  `json:"amount"`
	Price        int64  `json:"price"`
	Fee          int64  `json:"fee"`
	IsBuy        bool   `json:"is_buy"`
	OfferID      uint64 `json:"offer_id"`
	OrderBookID  uint64 `json:"order_book_id"`
}

// Type implements Operation.
func (m *ManageOffer) Type() string { return TypeManageOffer }

// IsCancel reports whether the operation cancels an existing offer.
func (m *ManageOffer) IsCancel() bool { return m.Amount == 0 && m.OfferID != 0 }

// Validate implements Operation.
func (m *ManageOffer) Validate() error {
	if len(m.BaseBalance) == 0 || len(m.QuoteBalance) == 0 {
		return ErrMissingBalance
	}
	if m.Amount < 0 || m.Fee < 0 {
		return ErrNegativeValue
	}
	// A cancel carries no price; a live offer must have one.
	if !m.IsCancel() && m.Price <= 0 {
		return ErrNonPositiveValue
	}
	return nil
}

// CreateWithdrawal requests a withdrawal of an amount from a balance to an
// external destination address.
type CreateWithdrawal struct {
	Balance []byte `json:"balance"`
	Amount  int64  `json:"amount"`
	Fee     int64  `json:"fee"`
	Address string `json:"address"`
}

// Type implements Operation.
func (w *CreateWithdrawal) Type() string { return TypeCreateWithdrawal }

// Validate implements Operation.
func (w *CreateWithdrawal) Validate() error {
	if len(w.Balance) == 0 {
		return ErrMissingBalance
	}
	if w.Amount <= 0 {
		return ErrNonPositiveValue
	}
	if w.Fee < 0 {
		return ErrNegativeValue
	}
	if w.Address == "" {
		return ErrMissingAddress
	}
	return nil
}
