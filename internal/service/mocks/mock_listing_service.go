package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"propertyapi/internal/model"
	"propertyapi/internal/service"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context) []model.Listing {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []model.Listing{}
	}
	return args.Get(0).([]model.Listing)
}

func (m *MockListingService) Get(ctx context.Context, id int) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, in service.ListingInput) (*model.Listing, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, id int, patch service.ListingPatch) (*model.Listing, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
