package mocks

import (
	"context"
	"time"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepo struct {
	mock.Mock
	domain.OrderRepository
}

func (m *MockOrderRepo) CreateReservation(ctx context.Context, res domain.Reservation, expiresAt time.Time) (*domain.Order, error) {
	args := m.Called(ctx, res, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) GetById(ctx context.Context, id int) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) GetDetail(ctx context.Context, id int) (*domain.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderDetail), args.Error(1)
}

func (m *MockOrderRepo) GetHistoryByMemberId(ctx context.Context, memberID int, p domain.Pagination) ([]domain.OrderDetail, *domain.Metadata, error) {
	args := m.Called(ctx, memberID, p)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.OrderDetail), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockOrderRepo) Finalize(ctx context.Context, orderID, memberID int, couponClaimID *int) (*domain.CheckoutSummary, error) {
	args := m.Called(ctx, orderID, memberID, couponClaimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSummary), args.Error(1)
}

func (m *MockOrderRepo) MarkPaid(ctx context.Context, orderID int, txnID string) (bool, error) {
	args := m.Called(ctx, orderID, txnID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) MarkPaymentFailed(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepo) Cancel(ctx context.Context, orderID, memberID int) error {
	args := m.Called(ctx, orderID, memberID)
	return args.Error(0)
}

func (m *MockOrderRepo) Refund(ctx context.Context, orderID, memberID int, now time.Time) error {
	args := m.Called(ctx, orderID, memberID, now)
	return args.Error(0)
}

func (m *MockOrderRepo) FindExpired(ctx context.Context, now time.Time) ([]int, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockOrderRepo) ExpireOrder(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
