package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"propertyapi/internal/service"
	"propertyapi/internal/storage"
)

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Store(ctx context.Context, file service.Upload, baseURL string) (string, error) {
	args := m.Called(ctx, file, baseURL)
	return args.String(0), args.Error(1)
}

func (m *MockImageService) StoreMany(ctx context.Context, files []service.Upload, attached int, baseURL string) (*service.UploadResult, error) {
	args := m.Called(ctx, files, attached, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockImageService) CheckBatch(count, attached int) error {
	return m.Called(count, attached).Error(0)
}

func (m *MockImageService) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockImageService) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *MockImageService) FilenameFromURL(rawURL string) (string, bool) {
	args := m.Called(rawURL)
	return args.String(0), args.Bool(1)
}
