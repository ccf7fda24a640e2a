package mocks

import (
	"context"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMemberRepo struct {
	mock.Mock
	domain.MemberRepository
}

func (m *MockMemberRepo) GetById(ctx context.Context, id int) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
