package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"glbiashara_backend/internal/media"
)

// ObjectStorage is a plain key/value blob store (local disk, S3, R2).
type ObjectStorage interface {
	// Save stores content under key, replacing any previous object
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes the object at key
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL of key
	GetURL(key string) string
}

// MediaStore is the storage dispatch boundary of the upload pipeline. It is
// the only component that talks to the outside world.
type MediaStore interface {
	Store(ctx context.Context, in StoreInput) (*media.StoredMedia, error)
	Delete(ctx context.Context, publicID string, kind media.Kind) error
	Provider() string
}

// StoreInput is a validated, named asset ready to be dispatched.
type StoreInput struct {
	Body     io.Reader
	Name     string
	Kind     media.Kind
	Folder   string
	MimeType string
	Size     int64
}

// Config holds storage configuration
type Config struct {
	Provider      string // cloudinary, s3, r2, local
	CloudinaryURL string // cloudinary://<key>:<secret>@<cloud>
	BasePath      string // For local storage
	BaseURL       string // Public URL base
	Bucket        string // For S3/R2
	Region        string // For S3
	AccessKey     string // For S3/R2
	SecretKey     string // For S3/R2
	Endpoint      string // For R2 or custom S3
	ImageQuality  int    // JPEG quality when blob stores downscale
}

// NewMediaStore builds the configured backend once at start-up.
func NewMediaStore(ctx context.Context, cfg Config) (MediaStore, error) {
	switch cfg.Provider {
	case "cloudinary", "":
		return NewCloudinaryStore(cfg.CloudinaryURL)
	case "local":
		local, err := NewLocalStorage(cfg)
		if err != nil {
			return nil, err
		}
		return NewBlobMediaStore("local", local, cfg.ImageQuality), nil
	case "s3", "r2":
		s3Store, err := NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewBlobMediaStore(cfg.Provider, s3Store, cfg.ImageQuality), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// ============================================
// ERRORS
// ============================================

var (
	// ErrNotFound is returned by Delete when the asset does not exist.
	ErrNotFound = errors.New("asset not found")
	// ErrInvalidImage is returned by Store when image bytes do not decode
	// as the declared type. Nothing is written.
	ErrInvalidImage = errors.New("image content does not match its type")
	// ErrImageDimensions is returned by Store when an image declares more
	// pixels than can be processed. Nothing is written.
	ErrImageDimensions = errors.New("image dimensions exceed the pixel limit")
)

// Error is a transport or remote-service failure.
type Error struct {
	Op       string
	Provider string
	Timeout  bool
	Err      error
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("storage %s %s: timed out: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps err, flagging it as a timeout when the context deadline
// has passed.
func newError(ctx context.Context, op, provider string, err error) *Error {
	timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
	return &Error{Op: op, Provider: provider, Timeout: timeout, Err: err}
}

// IsTimeout reports whether err is a storage timeout.
func IsTimeout(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Timeout
}
