package mocks

import (
	"context"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockSeatHoldRepo struct {
	mock.Mock
	domain.SeatHoldRepository
}

func (m *MockSeatHoldRepo) LockSeatHolds(ctx context.Context, tx pgx.Tx, ids []int) ([]domain.SeatHold, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatHold), args.Error(1)
}

func (m *MockSeatHoldRepo) BulkMaterialize(ctx context.Context, sessionIDs []int) error {
	args := m.Called(ctx, sessionIDs)
	return args.Error(0)
}

func (m *MockSeatHoldRepo) GetSeatMapBySession(ctx context.Context, sessionID int) ([]domain.SeatHold, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatHold), args.Error(1)
}
