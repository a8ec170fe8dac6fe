package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// Package storage holds the byte stores behind uploaded images.
// Keys are flat file names; there are no directories inside a store.

var (
	// ErrObjectNotFound is returned when a key does not exist in the store.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for empty keys or keys that try to leave the flat namespace.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the byte store for uploaded images.
type Storage interface {
	// Put writes the content of r under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens key for streaming. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes key, or returns ErrObjectNotFound.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}

// ValidateKey rejects keys that are empty or contain path elements.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) || path.Base(key) != key {
		return ErrInvalidKey
	}
	return nil
}
