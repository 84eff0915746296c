package payment

import "context"

// ChargeResult is the gateway's verdict on one charge attempt. Message carries
// gateway-internal detail and is for server-side logs only, never for clients.
type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Gateway charges a payment-method nonce for an amount. The amount string is
// the server-computed total; implementations must never accept anything derived
// from client input. A transport error or timeout means the charge must be
// treated as failed (fail closed).
type Gateway interface {
	Charge(ctx context.Context, amount, nonce string) (ChargeResult, error)
}
