package confirmation

import (
	"context"

	"github.com/scriplabs/scrip/internal/api"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// Resolver looks up a balance for an asset, creating it when missing.
type Resolver struct {
	source  BalanceSource
	creator BalanceCreator
}

// NewResolver creates a resolver over the given snapshot source and creator.
func NewResolver(source BalanceSource, creator BalanceCreator) *Resolver {
	return &Resolver{source: source, creator: creator}
}

// Resolve returns the balance holding the given asset. If the account has
// no such balance, one is created and the snapshot is re-checked exactly
// once. A balance still absent after a reported successful creation is an
// error; there is no retry or wait for convergence.
func (r *Resolver) Resolve(ctx context.Context, asset string) (api.Balance, error) {
	balance, found, err := r.lookup(ctx, asset)
	if err != nil {
		return api.Balance{}, createFailed(asset, err)
	}
	if found {
		return balance, nil
	}

	if err := r.creator.CreateBalance(ctx, asset); err != nil {
		return api.Balance{}, createFailed(asset, err)
	}

	balance, found, err = r.lookup(ctx, asset)
	if err != nil {
		return api.Balance{}, createFailed(asset, err)
	}
	if !found {
		// Creation reported success but the snapshot never picked the
		// balance up.
		return api.Balance{}, createFailed(asset, nil)
	}
	return balance, nil
}

func (r *Resolver) lookup(ctx context.Context, asset string) (api.Balance, bool, error) {
	balances, err := r.source.Balances(ctx)
	if err != nil {
		return api.Balance{}, false, err
	}
	for _, b := range balances {
		if b.Asset == asset {
			return b, true, nil
		}
	}
	return api.Balance{}, false, nil
}

func createFailed(asset string, cause error) error {
	err := scriperr.WithDetails(scriperr.ErrBalanceCreateFailed, map[string]string{"asset": asset})
	if cause != nil {
		err = scriperr.WithCause(err, cause)
	}
	return err
}
