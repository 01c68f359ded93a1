// Package api provides the REST/JSON client for the token platform:
// network parameters, account balances, balance creation, and transaction
// submission.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scriplabs/scrip/internal/metrics"
	"github.com/scriplabs/scrip/internal/tx"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// NetworkInfo holds the network parameters required to build any
// transaction. Fetched fresh per confirmation attempt; not cached here.
type NetworkInfo struct {
	Passphrase string `json:"network_passphrase"`
	Precision  int32  `json:"precision"`
	Ledger     int64  `json:"latest_ledger"`
}

// Balance is one asset holding of an account.
type Balance struct {
	Asset     string          `json:"asset"`
	BalanceID string          `json:"balance_id"`
	Available decimal.Decimal `json:"available"`
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	Hash   string `json:"hash"`
	Ledger int64  `json:"ledger"`
}

// apiError is the error body returned by the platform.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ClientOptions configures optional client behavior.
type ClientOptions struct {
	HTTPClient *http.Client
	Limiter    *RateLimiter
	Retry      *RetryConfig
}

// Client is the platform API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
	retry      RetryConfig
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string, opts *ClientOptions) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    DefaultRateLimiter(),
		retry:      DefaultRetryConfig(),
	}

	if opts != nil {
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		if opts.Limiter != nil {
			c.limiter = opts.Limiter
		}
		if opts.Retry != nil {
			c.retry = *opts.Retry
		}
	}

	return c
}

// FetchNetworkInfo returns the current network parameters.
func (c *Client) FetchNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	return RetryWithConfig(ctx, c.retry, func() (*NetworkInfo, error) {
		var info NetworkInfo
		if err := c.do(ctx, http.MethodGet, "/v1/info", nil, &info); err != nil {
			return nil, err
		}
		return &info, nil
	})
}

// Balances returns all balances of the given account.
func (c *Client) Balances(ctx context.Context, accountID string) ([]Balance, error) {
	path := fmt.Sprintf("/v1/accounts/%s/balances", accountID)
	return RetryWithConfig(ctx, c.retry, func() ([]Balance, error) {
		var out struct {
			Balances []Balance `json:"balances"`
		}
		if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
			return nil, err
		}
		return out.Balances, nil
	})
}

// CreateBalance creates a balance for the given asset on the account.
// Creation is idempotent server-side: creating an existing balance succeeds.
func (c *Client) CreateBalance(ctx context.Context, accountID, asset string) error {
	path := fmt.Sprintf("/v1/accounts/%s/balances", accountID)
	body := map[string]string{"asset": asset}

	_, err := RetryWithConfig(ctx, c.retry, func() (struct{}, error) {
		return struct{}{}, c.do(ctx, http.MethodPost, path, body, nil)
	})
	if err == nil {
		metrics.Global.RecordBalanceCreate()
	}
	return err
}

// SubmitTransaction submits a signed envelope. Submission is not retried:
// the envelope reference makes a resubmit safe server-side, but a rejected
// transaction stays rejected and the caller decides what to do next.
func (c *Client) SubmitTransaction(ctx context.Context, env *tx.Envelope) (*SubmitResult, error) {
	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, "/v1/transactions", env, &result); err != nil {
		var ae *apiError
		if scriperr.As(err, &ae) {
			return nil, scriperr.WithCause(
				scriperr.WithDetails(scriperr.ErrTxRejected, map[string]string{"code": ae.Code}),
				err,
			)
		}
		return nil, err
	}
	return &result, nil
}

// do performs one HTTP round trip: rate limit, request, decode.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx, path); err != nil {
		return err
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.Global.RecordAPICall(time.Since(start), err)
	if err != nil {
		return WrapRetryable(scriperr.WithCause(scriperr.ErrNetworkError, err))
	}
	// Body.Close error is intentionally ignored as it only fails if the
	// connection is already broken, and there's no recovery action.
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if err := c.checkStatus(resp, respBody); err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshaling response: %w", err)
		}
	}
	return nil
}

// checkStatus maps non-2xx responses to errors. Rate limiting and server
// errors are retryable; client errors are terminal and carry the
// platform's error body when present.
func (c *Client) checkStatus(resp *http.Response, body []byte) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil

	case resp.StatusCode == http.StatusTooManyRequests:
		if wait := ParseRetryAfter(resp.Header.Get("Retry-After")); wait > 0 {
			time.Sleep(wait)
		}
		return ErrRateLimited

	case resp.StatusCode >= 500:
		return WrapRetryable(fmt.Errorf("%w: status %d", scriperr.ErrNetworkError, resp.StatusCode))

	default:
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Code != "" {
			return &ae
		}
		return fmt.Errorf("%w: status %d", scriperr.ErrNetworkError, resp.StatusCode)
	}
}
