package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"propertyapi/internal/logging"
	"propertyapi/internal/model"
	"propertyapi/internal/repository"
)

// Store implements repository.ListingRepository over a single JSON array document.
// All mutations are serialized by mu; reads take it only for the load.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	log       *logging.Logger
	highWater int
}

// NewStore wraps backend. A nil logger discards output.
func NewStore(backend Backend, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{backend: backend, log: log}
}

var _ repository.ListingRepository = (*Store)(nil)

// ReadAll is fail-soft: a missing document is an empty collection, a corrupt or
// unreadable one is logged and also reported as empty.
func (s *Store) ReadAll(ctx context.Context) []model.Listing {
	s.mu.Lock()
	listings, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		s.log.Error("listing_store_read_failed", err, map[string]any{"component": "listing_store"})
		return []model.Listing{}
	}
	return listings
}

// WriteAll replaces the document with listings.
func (s *Store) WriteAll(ctx context.Context, listings []model.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, listings)
}

// Update loads strictly so that a corrupt document is never overwritten with the
// result of an empty fallback read.
func (s *Store) Update(ctx context.Context, fn repository.MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings, err := s.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(listings)
	if err != nil {
		return err
	}
	return s.save(ctx, next)
}

// ReserveID hands out max(id)+1, bumped past any id already issued by this
// process so that deleting the newest listing does not recycle its id.
func (s *Store) ReserveID(existing []model.Listing) int {
	id := repository.NextID(existing)
	if id <= s.highWater {
		id = s.highWater + 1
	}
	s.highWater = id
	return id
}

func (s *Store) load(ctx context.Context) ([]model.Listing, error) {
	data, err := s.backend.Load(ctx)
	if errors.Is(err, ErrNotExist) {
		return []model.Listing{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read document: %v", repository.ErrStorage, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Listing{}, nil
	}

	var listings []model.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("%w: parse document: %v", repository.ErrStorage, err)
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	return listings, nil
}

func (s *Store) save(ctx context.Context, listings []model.Listing) error {
	if listings == nil {
		listings = []model.Listing{}
	}
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", repository.ErrStorage, err)
	}
	data = append(data, '\n')
	if err := s.backend.Save(ctx, data); err != nil {
		s.log.Error("listing_store_write_failed", err, map[string]any{"component": "listing_store"})
		return fmt.Errorf("%w: write document: %v", repository.ErrStorage, err)
	}
	return nil
}
