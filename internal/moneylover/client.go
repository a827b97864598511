package moneylover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/logger"
)

// DefaultBaseURL is the MoneyLover web API root.
const DefaultBaseURL = "https://web.moneylover.me/api"

// tokenType is the authorization scheme MoneyLover expects in front of the JWT.
const tokenType = "AuthJWT"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// Client talks to the MoneyLover web API. It implements the ledger that the
// pipeline submits to.
type Client struct {
	baseURL string
	http    *http.Client
}

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Transport is the base round tripper under the auth layer.
	Transport http.RoundTripper
}

// NewClient creates a Client that authenticates every request with token.
func NewClient(token string, opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   tokenType,
	})

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: src, Base: opts.Transport},
		},
	}
}

// ListWallets returns every wallet of the account in the order the API lists them.
func (c *Client) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	var items []item
	if err := c.post(ctx, "wallet/list", nil, &items); err != nil {
		return nil, fmt.Errorf("ListWallets: %w", err)
	}

	wallets := make([]domain.Wallet, 0, len(items))
	for _, it := range items {
		wallets = append(wallets, domain.Wallet{ID: it.ID, Name: it.Name})
	}
	return wallets, nil
}

// ListCategories returns the categories of one wallet.
func (c *Client) ListCategories(ctx context.Context, walletID string) ([]domain.Category, error) {
	var items []item
	if err := c.post(ctx, "category/list", categoryListRequest{WalletID: walletID}, &items); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}

	categories := make([]domain.Category, 0, len(items))
	for _, it := range items {
		categories = append(categories, domain.Category{ID: it.ID, Name: it.Name})
	}
	return categories, nil
}

// AddTransaction creates one transaction in the ledger.
func (c *Client) AddTransaction(ctx context.Context, req domain.AddTransactionRequest) error {
	body := addTransactionRequest{
		Category:    req.CategoryID,
		Account:     req.AccountID,
		Amount:      req.Amount,
		Note:        req.Note,
		DisplayDate: req.Date,
	}
	if err := c.post(ctx, "transaction/add", body, nil); err != nil {
		return fmt.Errorf("AddTransaction: %w", err)
	}
	return nil
}

// post sends a JSON POST to endpoint and decodes the data field of the
// response envelope into out, when out is non-nil.
func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := c.baseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log := logger.FromContext(ctx)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("MoneyLover request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: summarize(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "invalid response body: " + summarize(raw)}
	}
	if truthy(env.Error) {
		msg := env.Msg
		if msg == "" {
			msg = summarize(raw)
		}
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", endpoint, err)
	}
	return nil
}

// truthy reports whether a JSON value would be considered set: anything but
// null, false, 0 and "".
func truthy(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

func summarize(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
