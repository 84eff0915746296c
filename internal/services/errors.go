package services

import "fmt"

// CheckoutErrorKind discriminates the four ways a checkout can fail.
type CheckoutErrorKind int

const (
	// KindValidation: malformed or tampered cart. Client's fault, no side effects.
	KindValidation CheckoutErrorKind = iota
	// KindInsufficientStock: a legitimate conflict; retry with adjusted quantities.
	KindInsufficientStock
	// KindPayment: the gateway declined or was unreachable. No stock or order mutation.
	KindPayment
	// KindPersistence: store failure after money moved; needs operator attention.
	KindPersistence
)

func (k CheckoutErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindPayment:
		return "payment"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

type CheckoutError struct {
	Kind    CheckoutErrorKind
	Message string
	Err     error
}

func (e *CheckoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CheckoutError) Unwrap() error { return e.Err }

func validationErr(format string, args ...any) *CheckoutError {
	return &CheckoutError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func stockErr(format string, args ...any) *CheckoutError {
	return &CheckoutError{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func paymentErr(msg string, err error) *CheckoutError {
	return &CheckoutError{Kind: KindPayment, Message: msg, Err: err}
}

func persistenceErr(msg string, err error) *CheckoutError {
	return &CheckoutError{Kind: KindPersistence, Message: msg, Err: err}
}
