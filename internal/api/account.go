package api

import (
	"context"

	"github.com/scriplabs/scrip/internal/tx"
)

// AccountClient binds a Client to one account so callers that always act
// on behalf of the signing account don't have to thread the account ID
// through every call.
type AccountClient struct {
	client    *Client
	accountID string
}

// NewAccountClient wraps the client for the given account.
func NewAccountClient(client *Client, accountID string) *AccountClient {
	return &AccountClient{client: client, accountID: accountID}
}

// AccountID returns the bound account identifier.
func (a *AccountClient) AccountID() string { return a.accountID }

// FetchNetworkInfo returns the current network parameters.
func (a *AccountClient) FetchNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	return a.client.FetchNetworkInfo(ctx)
}

// Balances returns the account's balances.
func (a *AccountClient) Balances(ctx context.Context) ([]Balance, error) {
	return a.client.Balances(ctx, a.accountID)
}

// CreateBalance creates a balance for the asset on the account.
func (a *AccountClient) CreateBalance(ctx context.Context, asset string) error {
	return a.client.CreateBalance(ctx, a.accountID, asset)
}

// Submit submits a signed envelope.
func (a *AccountClient) Submit(ctx context.Context, env *tx.Envelope) (*SubmitResult, error) {
	return a.client.SubmitTransaction(ctx, env)
}
