package confirmation

import (
	"context"
	"sync"

	"github.com/stellar/go/keypair"

	"github.com/scriplabs/scrip/internal/api"
	"github.com/scriplabs/scrip/internal/metrics"
	"github.com/scriplabs/scrip/internal/tx"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// Config wires an orchestrator's collaborators. Fetcher, Balances,
// Creator, Sender, Signer, and SourceAccount are required; Logger is
// optional.
type Config struct {
	Fetcher       NetworkInfoFetcher
	Balances      BalanceSource
	Creator       BalanceCreator
	Sender        Submitter
	Signer        *keypair.Full
	SourceAccount string
	Logger        LogWriter
}

// Orchestrator runs the confirmation pipeline. It borrows its
// collaborators; they are shared and long-lived. One Confirm call yields
// exactly one result and is never retried automatically.
type Orchestrator struct {
	fetcher  NetworkInfoFetcher
	resolver *Resolver
	sender   Submitter
	signer   *keypair.Full
	source   string
	logger   LogWriter
}

// New creates an orchestrator from the given configuration.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &Orchestrator{
		fetcher:  cfg.Fetcher,
		resolver: NewResolver(cfg.Balances, cfg.Creator),
		sender:   cfg.Sender,
		signer:   cfg.Signer,
		source:   cfg.SourceAccount,
		logger:   logger,
	}
}

// Receipt is the successful outcome of a confirmation.
type Receipt struct {
	Hash       string
	Ledger     int64
	Reference  string
	Operations int
}

// Confirm runs one intent through the pipeline: decode identifiers, fetch
// network info, resolve balances, validate, assemble, build, sign, submit.
// Every failure maps to exactly one code in the pkg/errors confirmation
// taxonomy. Partially created balances are left in place on failure.
func (o *Orchestrator) Confirm(ctx context.Context, intent Intent) (receipt *Receipt, err error) {
	defer func() {
		metrics.Global.RecordConfirmation(err)
		if err != nil {
			o.logger.Error("confirmation failed (%s): %v", intent.Kind(), err)
		}
	}()

	st := newState()

	// Identifier strings are checked before anything touches the network:
	// a bad checksum fails fast with no network-info fetch observed.
	if err = intent.decode(st); err != nil {
		return nil, err
	}

	o.logger.Debug("confirming %s", intent.Kind())

	info, ferr := o.fetcher.FetchNetworkInfo(ctx)
	if ferr != nil {
		return nil, scriperr.WithCause(scriperr.ErrNetworkInfo, ferr)
	}
	st.info = info

	if err = o.resolveAssets(ctx, intent, st); err != nil {
		return nil, err
	}

	if err = intent.validate(st); err != nil {
		return nil, err
	}

	ops, aerr := intent.assemble(st)
	if aerr != nil {
		return nil, aerr
	}

	builder := tx.NewBuilder(info.Passphrase, o.source)
	for _, op := range ops {
		builder.AddOperation(op)
	}

	env, berr := builder.Build()
	if berr != nil {
		return nil, scriperr.WithCause(scriperr.ErrSubmitFailed, berr)
	}
	if serr := env.Sign(o.signer); serr != nil {
		return nil, scriperr.WithCause(scriperr.ErrSubmitFailed, serr)
	}

	result, suberr := o.sender.Submit(ctx, env)
	if suberr != nil {
		return nil, scriperr.WithCause(scriperr.ErrSubmitFailed, suberr)
	}

	o.logger.Debug("confirmed %s: tx %s in ledger %d", intent.Kind(), result.Hash, result.Ledger)
	return &Receipt{
		Hash:       result.Hash,
		Ledger:     result.Ledger,
		Reference:  env.Reference,
		Operations: builder.OperationCount(),
	}, nil
}

// resolveAssets resolves every asset the intent references, concurrently.
// All resolutions run to completion before any result is inspected, so a
// single failure still names its specific asset after the join.
func (o *Orchestrator) resolveAssets(ctx context.Context, intent Intent, st *state) error {
	assets := intent.assets()
	if len(assets) == 0 {
		return nil
	}

	type slot struct {
		balance api.Balance
		err     error
		done    bool
	}
	slots := make([]slot, len(assets))

	var wg sync.WaitGroup
	for i, asset := range assets {
		wg.Add(1)
		go func(i int, asset string) {
			defer wg.Done()
			balance, err := o.resolver.Resolve(ctx, asset)
			slots[i] = slot{balance: balance, err: err, done: true}
		}(i, asset)
	}
	wg.Wait()

	st.balances = make(map[string]api.Balance, len(assets))
	for i, s := range slots {
		if !s.done {
			return createFailed(assets[i], nil)
		}
		if s.err != nil {
			return s.err
		}
		st.balances[assets[i]] = s.balance
	}
	return nil
}
