// Package confirmation turns a user's operation intent into a submitted
// transaction: decode identifiers, fetch network parameters, resolve
// balances, validate preconditions, assemble operations, build, sign,
// and submit. One call, one result.
package confirmation

import (
	"context"

	"github.com/scriplabs/scrip/internal/api"
	"github.com/scriplabs/scrip/internal/tx"
)

// NetworkInfoFetcher supplies the network parameters for one attempt.
// Fetched fresh per confirmation; this package never caches it.
type NetworkInfoFetcher interface {
	FetchNetworkInfo(ctx context.Context) (*api.NetworkInfo, error)
}

// BalanceSource supplies the current snapshot of the account's balances.
type BalanceSource interface {
	Balances(ctx context.Context) ([]api.Balance, error)
}

// BalanceCreator creates a balance for an asset on the account. Creation
// is expected to be idempotent; a partially created balance is never
// rolled back here.
type BalanceCreator interface {
	CreateBalance(ctx context.Context, asset string) error
}

// Submitter submits a signed envelope to the network.
type Submitter interface {
	Submit(ctx context.Context, env *tx.Envelope) (*api.SubmitResult, error)
}

// LogWriter is the logging interface consumed by this package.
type LogWriter interface {
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// nopLogger discards all log output.
type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
