package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("listing not found")
	ErrImageNotFound        = errors.New("image not found")
	ErrUnsupportedMediaType = errors.New("unsupported image type")
	ErrPayloadTooLarge      = errors.New("image exceeds the size limit")
	ErrTooManyFiles         = errors.New("too many images")
	ErrNoFiles              = errors.New("no images sent")
	ErrInvalidFilename      = errors.New("invalid image filename")
)

// ValidationError names the first field of a listing payload that failed validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// BatchRejectedError is returned by StoreMany when no file of a batch could be
// accepted. It unwraps to the first file's error.
type BatchRejectedError struct {
	Rejected []Rejection
}

func (e *BatchRejectedError) Error() string {
	if len(e.Rejected) == 0 {
		return ErrNoFiles.Error()
	}
	return fmt.Sprintf("all %d images rejected: %s", len(e.Rejected), e.Rejected[0].Reason)
}

func (e *BatchRejectedError) Unwrap() error {
	if len(e.Rejected) == 0 {
		return ErrNoFiles
	}
	return e.Rejected[0].Err
}
