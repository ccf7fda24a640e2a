package mocks

import (
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	orderNumber string,
	member *domain.Member,
	amount decimal.Decimal,
	itemDescription string) (*domain.CheckoutHandoff, error) {

	args := m.Called(orderNumber, member, amount, itemDescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutHandoff), args.Error(1)
}
