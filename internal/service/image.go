package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"propertyapi/internal/logging"
	"propertyapi/internal/storage"
)

// DefaultURLPrefix is the public path uploaded images are served under.
const DefaultURLPrefix = "/uploads"

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Upload is one file of an upload request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Rejection explains why a file of a batch was skipped.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
}

// UploadResult lists the stored URLs in request order and the skipped files.
type UploadResult struct {
	URLs     []string
	Rejected []Rejection
}

// ImageOptions bounds uploads. Zero values take the defaults (5 MiB, 5 files, /uploads).
type ImageOptions struct {
	MaxFileBytes int64
	MaxFiles     int
	URLPrefix    string
}

// ImageService owns uploaded image files: naming, validation, storage and removal.
type ImageService interface {
	// Store validates and writes a single file, returning its public URL.
	Store(ctx context.Context, file Upload, baseURL string) (string, error)

	// StoreMany validates the whole batch before writing anything. attached is the
	// number of images the listing already has and counts toward the batch limit.
	StoreMany(ctx context.Context, files []Upload, attached int, baseURL string) (*UploadResult, error)

	// CheckBatch applies the per-listing file cap before any file is opened.
	CheckBatch(count, attached int) error

	// Open streams a stored image.
	Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error)

	// Delete removes a stored image without checking which listings reference it.
	Delete(ctx context.Context, filename string) error

	// FilenameFromURL extracts the stored filename from a URL produced by Store.
	FilenameFromURL(rawURL string) (string, bool)
}

type imageService struct {
	store   storage.Storage
	opts    ImageOptions
	log     *logging.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewImageService constructs an ImageService over store.
func NewImageService(store storage.Storage, opts ImageOptions, log *logging.Logger, metrics *Metrics) ImageService {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = 5 * 1024 * 1024
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 5
	}
	if opts.URLPrefix == "" {
		opts.URLPrefix = DefaultURLPrefix
	}
	opts.URLPrefix = "/" + strings.Trim(opts.URLPrefix, "/")
	if log == nil {
		log = logging.Nop()
	}
	return &imageService{store: store, opts: opts, log: log, metrics: metrics, now: time.Now}
}

// GenerateFilename builds "<epoch-millis>-<name>" with whitespace runs collapsed to '-'.
// Any directory part of the client supplied name is dropped.
func GenerateFilename(now time.Time, original string) string {
	name := path.Base(strings.ReplaceAll(original, `\`, "/"))
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "-")
	if name == "" || name == "." || name == "/" || name == ".." {
		name = "image"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), name)
}

func (s *imageService) validate(f Upload) error {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	if _, ok := allowedImageTypes[ct]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, f.ContentType)
	}
	if f.Size > s.opts.MaxFileBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, f.Size, s.opts.MaxFileBytes)
	}
	if f.Reader == nil {
		return fmt.Errorf("%w: %s has no content", ErrNoFiles, f.Filename)
	}
	return nil
}

func (s *imageService) Store(ctx context.Context, file Upload, baseURL string) (string, error) {
	if err := s.validate(file); err != nil {
		s.metrics.imageResult("rejected")
		return "", err
	}
	key, err := s.put(ctx, file)
	if err != nil {
		return "", err
	}
	return s.publicURL(baseURL, key), nil
}

func (s *imageService) CheckBatch(count, attached int) error {
	if count == 0 {
		return ErrNoFiles
	}
	if attached < 0 {
		attached = 0
	}
	if count+attached > s.opts.MaxFiles {
		return fmt.Errorf("%w: %d new and %d attached, limit %d", ErrTooManyFiles, count, attached, s.opts.MaxFiles)
	}
	return nil
}

func (s *imageService) StoreMany(ctx context.Context, files []Upload, attached int, baseURL string) (*UploadResult, error) {
	if err := s.CheckBatch(len(files), attached); err != nil {
		return nil, err
	}

	res := &UploadResult{URLs: []string{}, Rejected: []Rejection{}}
	accepted := make([]Upload, 0, len(files))
	for _, f := range files {
		if err := s.validate(f); err != nil {
			s.metrics.imageResult("rejected")
			res.Rejected = append(res.Rejected, Rejection{Filename: f.Filename, Reason: err.Error(), Err: err})
			continue
		}
		accepted = append(accepted, f)
	}
	if len(accepted) == 0 {
		return nil, &BatchRejectedError{Rejected: res.Rejected}
	}

	written := make([]string, 0, len(accepted))
	for _, f := range accepted {
		key, err := s.put(ctx, f)
		if err != nil {
			s.rollback(ctx, written)
			return nil, err
		}
		written = append(written, key)
		res.URLs = append(res.URLs, s.publicURL(baseURL, key))
	}
	return res, nil
}

func (s *imageService) put(ctx context.Context, f Upload) (string, error) {
	key := GenerateFilename(s.now(), f.Filename)
	_, err := s.store.Put(ctx, key, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata:    map[string]string{"original-filename": f.Filename},
	})
	if err != nil {
		s.metrics.imageResult("failed")
		s.log.Error("image_store_failed", err, map[string]any{"component": "image_store", "key": key})
		return "", fmt.Errorf("store image: %w", err)
	}
	s.metrics.imageResult("stored")
	return key, nil
}

// rollback removes files written earlier in a batch that could not complete.
func (s *imageService) rollback(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Error("image_rollback_failed", err, map[string]any{"component": "image_store", "key": key})
		}
	}
}

func (s *imageService) publicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + s.opts.URLPrefix + "/" + url.PathEscape(key)
}

func (s *imageService) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	rc, info, err := s.store.Get(ctx, filename)
	if err != nil {
		return nil, storage.ObjectInfo{}, s.mapStorageErr(err)
	}
	return rc, info, nil
}

func (s *imageService) Delete(ctx context.Context, filename string) error {
	if err := s.store.Delete(ctx, filename); err != nil {
		return s.mapStorageErr(err)
	}
	return nil
}

func (s *imageService) mapStorageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		return ErrImageNotFound
	case errors.Is(err, storage.ErrInvalidKey):
		return ErrInvalidFilename
	default:
		return err
	}
}

func (s *imageService) FilenameFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	marker := s.opts.URLPrefix + "/"
	i := strings.LastIndex(u.Path, marker)
	if i < 0 {
		return "", false
	}
	key := u.Path[i+len(marker):]
	if storage.ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}
