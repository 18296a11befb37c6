package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, queue string, event any) error {
	return m.Called(ctx, queue, event).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}
