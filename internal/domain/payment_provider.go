package domain

import "github.com/shopspring/decimal"

// CheckoutHandoff is the provider-specific redirect payload returned after
// a charge request is created. Opaque to the engine; the client follows
// RedirectURL to complete payment.
type CheckoutHandoff struct {
	ProviderRef string
	RedirectURL string
}

// PaymentProvider is the outbound half of the payment gateway contract. The
// inbound half is the result callback handled by the notify endpoint.
type PaymentProvider interface {
	CreateCheckoutSession(orderNumber string, member *Member, amount decimal.Decimal, itemDescription string) (*CheckoutHandoff, error)
}
