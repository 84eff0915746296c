package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the hosted payment gateway over HTTP. One POST per charge;
// the configured timeout bounds the whole round trip.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type chargeRequest struct {
	Amount             string `json:"amount"`
	PaymentMethodNonce string `json:"payment_method_nonce"`
}

func (c *Client) Charge(ctx context.Context, amount, nonce string) (ChargeResult, error) {
	body, err := json.Marshal(chargeRequest{Amount: amount, PaymentMethodNonce: nonce})
	if err != nil {
		return ChargeResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return ChargeResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Covers timeouts: the charge may or may not have gone through, so
		// report failure and let the caller fail closed.
		return ChargeResult{}, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ChargeResult{}, fmt.Errorf("gateway response decode: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Message == "" {
			out.Message = fmt.Sprintf("gateway status %d", resp.StatusCode)
		}
		out.Success = false
	}
	return out, nil
}
