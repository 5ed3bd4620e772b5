// Package ledger is the typed client for the external ledger gateway:
// the service that generates and activates keypairs, reports balances,
// and submits signed value transfers to the underlying chain.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Account is a freshly created, activated keypair. The gateway funds the
// account with the chain's base reserve before returning, so the address
// can receive value immediately.
type Account struct {
	Address       string  `json:"address"`
	Secret        string  `json:"secret"`
	NativeBalance float64 `json:"native_balance"`
}

type Balance struct {
	Native float64 `json:"native"`
}

type TransferResult struct {
	Hash string `json:"hash"`
}

// Client is what the engines program against; tests substitute fakes.
type Client interface {
	CreateAccount(ctx context.Context) (*Account, error)
	GetBalance(ctx context.Context, address string) (*Balance, error)
	Transfer(ctx context.Context, sourceSecret, destAddress string, amount float64, memo string) (*TransferResult, error)
}

// Outcome classifies a failed ledger call. The distinction matters for
// transfers: an unknown outcome must be reconciled, never retried as if
// the value definitely did not move.
type Outcome int

const (
	// OutcomeFailed means the gateway answered and rejected the call;
	// no value moved.
	OutcomeFailed Outcome = iota
	// OutcomeUnknown means the request may have reached the gateway but
	// no definitive answer came back (timeout, transport failure, or a
	// gateway-side 5xx).
	OutcomeUnknown
)

type Error struct {
	Op         string
	Outcome    Outcome
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Outcome == OutcomeUnknown {
		return fmt.Sprintf("ledger %s: outcome unknown: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("ledger %s failed: %s", e.Op, e.Message)
}

// IsUnknownOutcome reports whether err is a ledger error whose effect on
// the chain could not be determined.
func IsUnknownOutcome(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Outcome == OutcomeUnknown
	}
	return false
}

// HTTPClient talks to the gateway's JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *HTTPClient) CreateAccount(ctx context.Context) (*Account, error) {
	var acct Account
	if err := c.do(ctx, "create account", http.MethodPost, "/accounts", nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

func (c *HTTPClient) GetBalance(ctx context.Context, address string) (*Balance, error) {
	var bal Balance
	path := fmt.Sprintf("/accounts/%s/balance", address)
	if err := c.do(ctx, "get balance", http.MethodGet, path, nil, &bal); err != nil {
		return nil, err
	}
	return &bal, nil
}

func (c *HTTPClient) Transfer(ctx context.Context, sourceSecret, destAddress string, amount float64, memo string) (*TransferResult, error) {
	payload := map[string]any{
		"source_secret": sourceSecret,
		"destination":   destAddress,
		"amount":        amount,
		"memo":          memo,
	}
	var res TransferResult
	if err := c.do(ctx, "transfer", http.MethodPost, "/payments", payload, &res); err != nil {
		return nil, err
	}
	if res.Hash == "" {
		return nil, &Error{Op: "transfer", Outcome: OutcomeUnknown, Message: "gateway returned no transaction hash"}
	}
	return &res, nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &Error{Op: op, Outcome: OutcomeFailed, Message: err.Error()}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Outcome: OutcomeFailed, Message: err.Error()}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request may have left the process before the transport
		// gave up; treat as unresolved.
		c.log.Warn("ledger gateway unreachable", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Outcome: OutcomeUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		msg := readGatewayMessage(resp.Body)
		return &Error{Op: op, Outcome: OutcomeUnknown, StatusCode: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode >= 400 {
		msg := readGatewayMessage(resp.Body)
		return &Error{Op: op, Outcome: OutcomeFailed, StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Outcome: OutcomeUnknown, StatusCode: resp.StatusCode, Message: "malformed gateway response: " + err.Error()}
	}
	return nil
}

func readGatewayMessage(r io.Reader) string {
	var e struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
		return e.Message
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "no error detail"
}
