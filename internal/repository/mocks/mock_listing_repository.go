package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"propertyapi/internal/model"
	"propertyapi/internal/repository"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) ReadAll(ctx context.Context) []model.Listing {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []model.Listing{}
	}
	return args.Get(0).([]model.Listing)
}

func (m *MockListingRepository) WriteAll(ctx context.Context, listings []model.Listing) error {
	args := m.Called(ctx, listings)
	return args.Error(0)
}

// Update passes current to fn when the expectation returns a []model.Listing as its
// first value, mimicking the store's read-modify-write cycle.
func (m *MockListingRepository) Update(ctx context.Context, fn repository.MutateFunc) error {
	args := m.Called(ctx, fn)
	if current, ok := args.Get(0).([]model.Listing); ok {
		if _, err := fn(current); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *MockListingRepository) ReserveID(existing []model.Listing) int {
	return repository.NextID(existing)
}
