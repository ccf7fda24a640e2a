package payment

import (
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MockPaymentProvider struct {
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	orderNumber string,
	member *domain.Member,
	amount decimal.Decimal,
	itemDescription string) (*domain.CheckoutHandoff, error) {

	return &domain.CheckoutHandoff{
		ProviderRef: "mock_" + uuid.NewString(),
		RedirectURL: "https://payments.example.com/checkout/" + orderNumber,
	}, nil
}
