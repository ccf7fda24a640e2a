package mocks

import (
	"context"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCouponRepo struct {
	mock.Mock
	domain.CouponRepository
}

func (m *MockCouponRepo) GetCouponById(ctx context.Context, id int) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) Claim(ctx context.Context, memberID, couponID int) (*domain.CouponClaim, error) {
	args := m.Called(ctx, memberID, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CouponClaim), args.Error(1)
}

func (m *MockCouponRepo) GetUnusedClaimsByMember(ctx context.Context, memberID int) ([]domain.CouponClaim, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CouponClaim), args.Error(1)
}
