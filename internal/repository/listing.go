package repository

import (
	"context"
	"errors"

	"propertyapi/internal/model"
)

// ErrStorage marks failures of the underlying document I/O.
// Callers map it to a 500 response; it is never swallowed on writes.
var ErrStorage = errors.New("listing storage failure")

// MutateFunc receives the current listing collection and returns the collection to persist.
// Returning an error aborts the cycle and nothing is written.
type MutateFunc func(listings []model.Listing) ([]model.Listing, error)

// ListingRepository stores the whole listing collection as a single document.
// There is no partial update primitive: every mutation is a full read-modify-write.
type ListingRepository interface {
	// ReadAll returns every listing. A missing or unreadable document yields an empty
	// slice; the failure is reported to the operator log instead of the caller.
	ReadAll(ctx context.Context) []model.Listing

	// WriteAll overwrites the document with listings.
	WriteAll(ctx context.Context, listings []model.Listing) error

	// Update runs fn inside the store's serialized read-modify-write cycle.
	// Concurrent calls never interleave, so no mutation is lost.
	Update(ctx context.Context, fn MutateFunc) error

	// ReserveID returns the id for a new listing given the current collection.
	// Must be called from within fn passed to Update.
	ReserveID(existing []model.Listing) int
}

// NextID returns 1 for an empty collection, otherwise the highest id plus one.
func NextID(existing []model.Listing) int {
	max := 0
	for _, l := range existing {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}
