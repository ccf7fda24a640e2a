package payment

import (
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

// CreateCheckoutSession creates a hosted checkout for the already-finalized
// amount. The order number travels in ClientReferenceID and comes back on
// the result callback, so the callback can be matched without provider
// lookups.
func (s *StripePaymentProvider) CreateCheckoutSession(
	orderNumber string,
	member *domain.Member,
	amount decimal.Decimal,
	itemDescription string) (*domain.CheckoutHandoff, error) {

	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Flux Cinema tickets"),
						Description: stripe.String(itemDescription),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successUrl),
		CancelURL:  stripe.String(s.failureUrl),
		Metadata: map[string]string{
			"order_number": orderNumber,
		},
		CustomerEmail:     &member.Email,
		ClientReferenceID: stripe.String(orderNumber),
	}

	checkoutSession, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutHandoff{
		ProviderRef: checkoutSession.ID,
		RedirectURL: checkoutSession.URL,
	}, nil
}
