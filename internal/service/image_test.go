package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"propertyapi/internal/storage"
	"propertyapi/internal/storage/mocks"
)

const testBaseURL = "http://localhost:3001"

func newLocalImages(t *testing.T) (*imageService, storage.Storage) {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	svc := NewImageService(store, ImageOptions{}, nil, nil).(*imageService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, store
}

func pngUpload(name string, size int) Upload {
	return Upload{Filename: name, ContentType: "image/png", Size: int64(size), Reader: bytes.NewReader(make([]byte, size))}
}

func TestGenerateFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"plain", "sala.jpg", "1700000000123-sala.jpg"},
		{"spaces", "my  house photo.png", "1700000000123-my-house-photo.png"},
		{"tabs and newlines", "a\t\nb.gif", "1700000000123-a-b.gif"},
		{"directory dropped", "../../etc/passwd.png", "1700000000123-passwd.png"},
		{"windows path", `C:\Users\me\front door.webp`, "1700000000123-front-door.webp"},
		{"empty", "", "1700000000123-image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateFilename(now, tt.original))
		})
	}
}

func TestImageService_Store(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and returns url", func(t *testing.T) {
		svc, store := newLocalImages(t)
		u, err := svc.Store(ctx, pngUpload("front view.png", 1024), testBaseURL+"/")
		require.NoError(t, err)
		assert.Equal(t, testBaseURL+"/uploads/1700000000000-front-view.png", u)

		ok, err := store.Exists(ctx, "1700000000000-front-view.png")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("too large", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		_, err := svc.Store(ctx, pngUpload("big.png", 6*1024*1024), testBaseURL)
		assert.ErrorIs(t, err, ErrPayloadTooLarge)
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		_, err := svc.Store(ctx, pngUpload("edge.png", 5*1024*1024), testBaseURL)
		assert.NoError(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		_, err := svc.Store(ctx, Upload{Filename: "notes.txt", ContentType: "text/plain", Size: 1024 * 1024, Reader: strings.NewReader("x")}, testBaseURL)
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})

	t.Run("content type parameters ignored", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		_, err := svc.Store(ctx, Upload{Filename: "a.jpg", ContentType: "IMAGE/JPEG; charset=binary", Size: 3, Reader: strings.NewReader("abc")}, testBaseURL)
		assert.NoError(t, err)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := new(mocks.MockStorage)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("disk full"))
		svc := NewImageService(store, ImageOptions{}, nil, nil)

		_, err := svc.Store(ctx, pngUpload("a.png", 10), testBaseURL)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestImageService_CheckBatch(t *testing.T) {
	svc, _ := newLocalImages(t)

	assert.ErrorIs(t, svc.CheckBatch(0, 0), ErrNoFiles)
	assert.NoError(t, svc.CheckBatch(5, 0))
	assert.NoError(t, svc.CheckBatch(2, 3))
	assert.ErrorIs(t, svc.CheckBatch(3, 3), ErrTooManyFiles)
	assert.ErrorIs(t, svc.CheckBatch(6, -1), ErrTooManyFiles)
}

func TestImageService_StoreMany(t *testing.T) {
	ctx := context.Background()

	t.Run("no files", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		_, err := svc.StoreMany(ctx, nil, 0, testBaseURL)
		assert.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run("six new files", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		files := make([]Upload, 6)
		for i := range files {
			files[i] = pngUpload("a.png", 10)
		}
		_, err := svc.StoreMany(ctx, files, 0, testBaseURL)
		assert.ErrorIs(t, err, ErrTooManyFiles)
	})

	t.Run("attached images count toward the limit", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		files := []Upload{pngUpload("a.png", 10), pngUpload("b.png", 10), pngUpload("c.png", 10)}
		_, err := svc.StoreMany(ctx, files, 3, testBaseURL)
		assert.ErrorIs(t, err, ErrTooManyFiles)

		res, err := svc.StoreMany(ctx, files[:2], 3, testBaseURL)
		require.NoError(t, err)
		assert.Len(t, res.URLs, 2)
	})

	t.Run("invalid files are reported and valid ones stored", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		files := []Upload{
			pngUpload("ok.png", 10),
			{Filename: "doc.pdf", ContentType: "application/pdf", Size: 10, Reader: strings.NewReader("x")},
			pngUpload("huge.png", 6*1024*1024),
		}
		res, err := svc.StoreMany(ctx, files, 0, testBaseURL)
		require.NoError(t, err)
		assert.Equal(t, []string{testBaseURL + "/uploads/1700000000000-ok.png"}, res.URLs)
		require.Len(t, res.Rejected, 2)
		assert.Equal(t, "doc.pdf", res.Rejected[0].Filename)
		assert.ErrorIs(t, res.Rejected[0].Err, ErrUnsupportedMediaType)
		assert.ErrorIs(t, res.Rejected[1].Err, ErrPayloadTooLarge)
	})

	t.Run("all invalid reports every rejection", func(t *testing.T) {
		svc, _ := newLocalImages(t)
		files := []Upload{
			pngUpload("huge.png", 6*1024*1024),
			{Filename: "doc.txt", ContentType: "text/plain", Size: 1, Reader: strings.NewReader("x")},
		}
		_, err := svc.StoreMany(ctx, files, 0, testBaseURL)
		assert.ErrorIs(t, err, ErrPayloadTooLarge)

		var batch *BatchRejectedError
		require.ErrorAs(t, err, &batch)
		require.Len(t, batch.Rejected, 2)
		assert.Equal(t, "huge.png", batch.Rejected[0].Filename)
		assert.Equal(t, "doc.txt", batch.Rejected[1].Filename)
		assert.ErrorIs(t, batch.Rejected[1].Err, ErrUnsupportedMediaType)
	})

	t.Run("storage failure rolls back written files", func(t *testing.T) {
		store := new(mocks.MockStorage)
		store.On("Put", mock.Anything, "1-a.png", mock.Anything, mock.Anything).Return(storage.ObjectInfo{Key: "1-a.png"}, nil).Once()
		store.On("Put", mock.Anything, "1-b.png", mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("boom")).Once()
		store.On("Delete", mock.Anything, "1-a.png").Return(nil).Once()

		svc := NewImageService(store, ImageOptions{}, nil, nil).(*imageService)
		svc.now = func() time.Time { return time.UnixMilli(1) }

		_, err := svc.StoreMany(ctx, []Upload{pngUpload("a.png", 1), pngUpload("b.png", 1)}, 0, testBaseURL)
		assert.Error(t, err)
		store.AssertExpectations(t)
	})
}

func TestImageService_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	svc := NewImageService(store, ImageOptions{}, nil, m)

	_, err = svc.StoreMany(context.Background(), []Upload{
		pngUpload("a.png", 1),
		{Filename: "b.txt", ContentType: "text/plain", Size: 1, Reader: strings.NewReader("x")},
	}, 0, testBaseURL)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.imagesStored.WithLabelValues("stored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.imagesStored.WithLabelValues("rejected")))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestImageService_OpenAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLocalImages(t)

	u, err := svc.Store(ctx, Upload{Filename: "a.png", ContentType: "image/png", Size: 5, Reader: strings.NewReader("hello")}, testBaseURL)
	require.NoError(t, err)
	name, ok := svc.FilenameFromURL(u)
	require.True(t, ok)

	rc, info, err := svc.Open(ctx, name)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, int64(5), info.Size)

	require.NoError(t, svc.Delete(ctx, name))
	assert.ErrorIs(t, svc.Delete(ctx, name), ErrImageNotFound)

	_, _, err = svc.Open(ctx, name)
	assert.ErrorIs(t, err, ErrImageNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "../properties.json"), ErrInvalidFilename)
}

func TestImageService_FilenameFromURL(t *testing.T) {
	svc, _ := newLocalImages(t)
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"http://localhost:3001/uploads/1700-a.png", "1700-a.png", true},
		{"/uploads/1700-a.png", "1700-a.png", true},
		{"https://cdn.example.com/api/uploads/1700-my%20house.png", "1700-my house.png", true},
		{"https://images.example.com/photo.jpg", "", false},
		{"http://localhost:3001/uploads/", "", false},
		{"http://localhost:3001/uploads/a/b.png", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := svc.FilenameFromURL(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
