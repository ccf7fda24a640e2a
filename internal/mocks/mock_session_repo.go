package mocks

import (
	"context"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSessionRepo struct {
	mock.Mock
	domain.SessionRepository
}

func (m *MockSessionRepo) GetById(ctx context.Context, id int) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepo) CreateSessions(ctx context.Context, sessions []domain.Session) ([]int, error) {
	args := m.Called(ctx, sessions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}
