package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"propertyapi/internal/events"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev events.ListingEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}
