package domain

// CartLine is one entry of the cart a client submits at checkout. Everything in
// it is untrusted: price is advisory (checked against the stored product, never
// charged), qty defaults to 1 when absent.
type CartLine struct {
	ProductID string   `json:"_id"`
	Name      string   `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Qty       *int     `json:"qty,omitempty"`
}

// CheckoutRequest is the transient payload of one checkout attempt. The buyer
// comes from the authenticated session, never from the body.
type CheckoutRequest struct {
	Nonce string     `json:"nonce"`
	Cart  []CartLine `json:"cart"`
}
