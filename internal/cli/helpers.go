package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"github.com/scriplabs/scrip/internal/amount"
	"github.com/scriplabs/scrip/internal/api"
	"github.com/scriplabs/scrip/internal/config"
	"github.com/scriplabs/scrip/internal/keystore"
	"github.com/scriplabs/scrip/internal/service/confirmation"
)

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes are intentionally unchecked
func out(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes are intentionally unchecked
func outln(w io.Writer, args ...interface{}) {
	fmt.Fprintln(w, args...)
}

// contextWithTimeout returns a timeout context rooted in the command context.
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	return context.WithTimeout(base, d)
}

// apiTimeout returns the configured API timeout.
func apiTimeout() time.Duration {
	seconds := cfg.API.TimeoutSeconds
	if seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

// newAPIClient builds the platform client from the active configuration.
func newAPIClient() *api.Client {
	return api.NewClient(cfg.GetAPIURL(), &api.ClientOptions{
		Limiter: api.NewRateLimiter(cfg.API.RatePerSecond, cfg.API.Burst),
	})
}

// session holds everything an unlocked signing command needs. Close
// destroys the seed material.
type session struct {
	account *api.AccountClient
	orch    *confirmation.Orchestrator
	keypair *keypair.Full
	close   func()
}

// Close releases the session's key material.
func (s *session) Close() {
	if s.close != nil {
		s.close()
	}
}

// openSession unlocks the wallet, derives the signing keypair, and wires
// the confirmation orchestrator against the platform API.
func openSession() (*session, error) {
	store := keystore.NewStore(config.ExpandHome(cfg.GetWalletFile()))

	password, err := promptPassword("Wallet password: ")
	if err != nil {
		return nil, err
	}
	defer zeroBytes(password)

	_, seed, err := store.Load(string(password))
	if err != nil {
		return nil, err
	}

	kp, err := keystore.AccountKeypair(seed)
	if err != nil {
		seed.Destroy()
		return nil, err
	}

	account := api.NewAccountClient(newAPIClient(), kp.Address())
	orch := confirmation.New(confirmation.Config{
		Fetcher:       account,
		Balances:      account,
		Creator:       account,
		Sender:        account,
		Signer:        kp,
		SourceAccount: kp.Address(),
		Logger:        logger,
	})

	return &session{
		account: account,
		orch:    orch,
		keypair: kp,
		close:   seed.Destroy,
	}, nil
}

// parseAmountFlag parses a required positive decimal flag value.
func parseAmountFlag(name, value string) (decimal.Decimal, error) {
	d, err := amount.ParsePositive(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// parseFeeFlags parses optional fixed/percent fee flag values.
func parseFeeFlags(fixed, percent string) (confirmation.Fee, error) {
	fee := confirmation.Fee{Fixed: decimal.Zero, Percent: decimal.Zero}

	if fixed != "" {
		d, err := amount.Parse(fixed)
		if err != nil {
			return fee, fmt.Errorf("--fee-fixed: %w", err)
		}
		fee.Fixed = d
	}
	if percent != "" {
		d, err := amount.Parse(percent)
		if err != nil {
			return fee, fmt.Errorf("--fee-percent: %w", err)
		}
		fee.Percent = d
	}
	return fee, nil
}

// zeroBytes zeroes a byte slice.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
