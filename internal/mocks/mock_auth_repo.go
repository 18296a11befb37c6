package mocks

import (
	"context"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOperatorRepo struct {
	mock.Mock
	repository.OperatorRepository
}

func (m *MockOperatorRepo) Create(ctx context.Context, operator *entity.Operator) error {
	return m.Called(ctx, operator).Error(0)
}

func (m *MockOperatorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Operator), args.Error(1)
}

func (m *MockOperatorRepo) FindByUsername(ctx context.Context, username string) (*entity.Operator, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Operator), args.Error(1)
}

type MockTokenRepo struct {
	mock.Mock
	repository.TokenRepository
}

func (m *MockTokenRepo) Create(ctx context.Context, token *entity.AuthToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenRepo) FindValid(ctx context.Context, token string) (*entity.AuthToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthToken), args.Error(1)
}

func (m *MockTokenRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenRepo) CleanExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
