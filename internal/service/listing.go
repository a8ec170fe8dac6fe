package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"propertyapi/internal/events"
	"propertyapi/internal/logging"
	"propertyapi/internal/model"
	"propertyapi/internal/repository"
)

var tracer = otel.Tracer("propertyapi/service")

// ListingInput is the create payload. Field order is the order in which missing
// fields are reported.
type ListingInput struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Price       float64        `json:"price" validate:"required"`
	Location    string         `json:"location" validate:"required"`
	Bedrooms    int            `json:"bedrooms" validate:"required"`
	Bathrooms   int            `json:"bathrooms" validate:"required"`
	Area        float64        `json:"area" validate:"required"`
	Type        string         `json:"type" validate:"required"`
	Images      []string       `json:"images" validate:"required,min=1"`
	Contact     *model.Contact `json:"contact" validate:"required"`
	Amenities   []string       `json:"amenities"`
	Post        string         `json:"post"`
}

// ListingPatch is a shallow update: nil fields keep their stored value.
// ID and CreatedAt are decoded so clients may echo a full record, but they are
// never applied.
type ListingPatch struct {
	ID          *int           `json:"id"`
	CreatedAt   *time.Time     `json:"createdAt"`
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Price       *float64       `json:"price"`
	Location    *string        `json:"location"`
	Bedrooms    *int           `json:"bedrooms"`
	Bathrooms   *int           `json:"bathrooms"`
	Area        *float64       `json:"area"`
	Type        *string        `json:"type"`
	Post        *string        `json:"post"`
	Images      *[]string      `json:"images"`
	Amenities   *[]string      `json:"amenities"`
	Contact     *model.Contact `json:"contact"`
	Available   *bool          `json:"available"`
}

// ListingService defines the use cases for property listings.
type ListingService interface {
	List(ctx context.Context) []model.Listing
	Get(ctx context.Context, id int) (*model.Listing, error)
	Create(ctx context.Context, in ListingInput) (*model.Listing, error)
	Update(ctx context.Context, id int, patch ListingPatch) (*model.Listing, error)
	// Delete removes the record first, then its image files. A failed write leaves
	// both untouched; a failed file removal only leaves an orphaned file.
	Delete(ctx context.Context, id int) error
}

type listingService struct {
	repo     repository.ListingRepository
	images   ImageService
	events   events.Publisher
	log      *logging.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewListingService constructs a ListingService. publisher and log may be nil.
func NewListingService(repo repository.ListingRepository, images ImageService, publisher events.Publisher, log *logging.Logger) ListingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &listingService{
		repo:     repo,
		images:   images,
		events:   publisher,
		log:      log,
		validate: newValidator(),
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *listingService) check(in *ListingInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Type = strings.TrimSpace(in.Type)
	in.Post = strings.TrimSpace(in.Post)
	in.Amenities = cleanTags(in.Amenities)

	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field()}
	}
	return err
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *listingService) List(ctx context.Context) []model.Listing {
	return s.repo.ReadAll(ctx)
}

func (s *listingService) Get(ctx context.Context, id int) (*model.Listing, error) {
	for _, l := range s.repo.ReadAll(ctx) {
		if l.ID == id {
			l := l
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (s *listingService) Create(ctx context.Context, in ListingInput) (_ *model.Listing, err error) {
	ctx, span := tracer.Start(ctx, "ListingService.Create")
	defer func() { endSpan(span, err) }()

	if err := s.check(&in); err != nil {
		return nil, err
	}

	var created model.Listing
	err = s.repo.Update(ctx, func(listings []model.Listing) ([]model.Listing, error) {
		created = model.Listing{
			ID:          s.repo.ReserveID(listings),
			Title:       in.Title,
			Description: in.Description,
			Price:       in.Price,
			Location:    in.Location,
			Bedrooms:    in.Bedrooms,
			Bathrooms:   in.Bathrooms,
			Area:        in.Area,
			Type:        in.Type,
			Post:        in.Post,
			Images:      in.Images,
			Amenities:   in.Amenities,
			Contact:     *in.Contact,
			Available:   true,
			CreatedAt:   s.now().UTC(),
		}
		return append(listings, created), nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("listing.id", created.ID))
	s.publish(ctx, events.ListingCreated, created)
	return &created, nil
}

func (s *listingService) Update(ctx context.Context, id int, patch ListingPatch) (_ *model.Listing, err error) {
	ctx, span := tracer.Start(ctx, "ListingService.Update", trace.WithAttributes(attribute.Int("listing.id", id)))
	defer func() { endSpan(span, err) }()

	var updated model.Listing
	err = s.repo.Update(ctx, func(listings []model.Listing) ([]model.Listing, error) {
		idx := indexOf(listings, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		merged := applyPatch(listings[idx], patch)
		merged.ID = id
		listings[idx] = merged
		updated = merged
		return listings, nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ListingUpdated, updated)
	return &updated, nil
}

func (s *listingService) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracer.Start(ctx, "ListingService.Delete", trace.WithAttributes(attribute.Int("listing.id", id)))
	defer func() { endSpan(span, err) }()

	var removed model.Listing
	err = s.repo.Update(ctx, func(listings []model.Listing) ([]model.Listing, error) {
		idx := indexOf(listings, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		removed = listings[idx]
		return append(listings[:idx], listings[idx+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.removeImages(ctx, removed)
	s.publish(ctx, events.ListingDeleted, removed)
	return nil
}

// removeImages is best effort: missing files and foreign URLs are skipped.
func (s *listingService) removeImages(ctx context.Context, l model.Listing) {
	if s.images == nil {
		return
	}
	for _, u := range l.Images {
		name, ok := s.images.FilenameFromURL(u)
		if !ok {
			s.log.Info("listing_image_skipped", map[string]any{"listing_id": l.ID, "url": u})
			continue
		}
		if err := s.images.Delete(ctx, name); err != nil {
			if errors.Is(err, ErrImageNotFound) {
				s.log.Info("listing_image_missing", map[string]any{"listing_id": l.ID, "filename": name})
				continue
			}
			s.log.Error("listing_image_delete_failed", err, map[string]any{"listing_id": l.ID, "filename": name})
		}
	}
}

func (s *listingService) publish(ctx context.Context, typ string, l model.Listing) {
	ev := events.ListingEvent{
		Type:         typ,
		ListingID:    l.ID,
		Title:        l.Title,
		PrimaryImage: l.PrimaryImage(),
		OccurredAt:   s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Error("listing_event_publish_failed", err, map[string]any{"listing_id": l.ID, "type": typ})
	}
}

func indexOf(listings []model.Listing, id int) int {
	for i, l := range listings {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func applyPatch(l model.Listing, p ListingPatch) model.Listing {
	if p.Title != nil {
		l.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		l.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Location != nil {
		l.Location = strings.TrimSpace(*p.Location)
	}
	if p.Bedrooms != nil {
		l.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		l.Bathrooms = *p.Bathrooms
	}
	if p.Area != nil {
		l.Area = *p.Area
	}
	if p.Type != nil {
		l.Type = strings.TrimSpace(*p.Type)
	}
	if p.Post != nil {
		l.Post = strings.TrimSpace(*p.Post)
	}
	if p.Images != nil {
		l.Images = *p.Images
	}
	if p.Amenities != nil {
		l.Amenities = cleanTags(*p.Amenities)
	}
	if p.Contact != nil {
		l.Contact = *p.Contact
	}
	if p.Available != nil {
		l.Available = *p.Available
	}
	return l
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
