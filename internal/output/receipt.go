package output

import (
	"fmt"
	"strings"

	"github.com/scriplabs/scrip/internal/amount"
	"github.com/scriplabs/scrip/internal/api"
	"github.com/scriplabs/scrip/internal/service/confirmation"
)

// ReceiptView is the printable form of a confirmation receipt.
type ReceiptView struct {
	Status     string `json:"status"`
	Hash       string `json:"hash"`
	Ledger     int64  `json:"ledger"`
	Reference  string `json:"reference"`
	Operations int    `json:"operations"`
}

// NewReceiptView builds a view from a confirmation receipt.
func NewReceiptView(r *confirmation.Receipt) ReceiptView {
	return ReceiptView{
		Status:     "confirmed",
		Hash:       r.Hash,
		Ledger:     r.Ledger,
		Reference:  r.Reference,
		Operations: r.Operations,
	}
}

// String implements fmt.Stringer for text output.
func (v ReceiptView) String() string {
	var b strings.Builder
	b.WriteString("Confirmed\n")
	fmt.Fprintf(&b, "  Transaction: %s\n", v.Hash)
	fmt.Fprintf(&b, "  Ledger:      %d\n", v.Ledger)
	fmt.Fprintf(&b, "  Reference:   %s", v.Reference)
	return b.String()
}

// BalanceListView is the printable form of an account's balances.
type BalanceListView struct {
	AccountID string        `json:"account_id"`
	Balances  []BalanceView `json:"balances"`
}

// BalanceView is one balance row.
type BalanceView struct {
	Asset     string `json:"asset"`
	BalanceID string `json:"balance_id"`
	Available string `json:"available"`
}

// NewBalanceListView builds a view from API balances. Amounts are shown
// at the network precision.
func NewBalanceListView(accountID string, balances []api.Balance, precision int32) BalanceListView {
	view := BalanceListView{
		AccountID: accountID,
		Balances:  make([]BalanceView, 0, len(balances)),
	}
	for _, b := range balances {
		view.Balances = append(view.Balances, BalanceView{
			Asset:     b.Asset,
			BalanceID: b.BalanceID,
			Available: amount.Format(amount.ToUnits(b.Available, precision), precision),
		})
	}
	return view
}

// String implements fmt.Stringer for text output.
func (v BalanceListView) String() string {
	if len(v.Balances) == 0 {
		return "No balances"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Balances for %s\n", v.AccountID)
	for i, row := range v.Balances {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "  %-8s %12s  %s", row.Asset, row.Available, row.BalanceID)
	}
	return b.String()
}
