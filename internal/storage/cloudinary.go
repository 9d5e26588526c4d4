package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"glbiashara_backend/internal/media"
)

const providerCloudinary = "cloudinary"

// Incoming transformations applied by Cloudinary on upload.
var cloudinaryTransformations = map[media.Kind]string{
	media.KindImage: fmt.Sprintf("c_limit,w_%d,h_%d/q_auto,f_auto", media.ImageBounds.Width, media.ImageBounds.Height),
	media.KindVideo: fmt.Sprintf("c_limit,w_%d,h_%d/q_auto", media.VideoBounds.Width, media.VideoBounds.Height),
}

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore dispatches assets to Cloudinary.
type CloudinaryStore struct {
	api cloudinaryAPI
}

// NewCloudinaryStore builds a client from a cloudinary:// URL. An empty URL
// falls back to the CLOUDINARY_URL environment variable, as the SDK does.
func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL == "" {
		cld, err = cloudinary.New()
	} else {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &CloudinaryStore{api: &cld.Upload}, nil
}

func (s *CloudinaryStore) Provider() string {
	return providerCloudinary
}

// Store uploads the asset with overwrite enabled: a name collision replaces
// the previous asset.
func (s *CloudinaryStore) Store(ctx context.Context, in StoreInput) (*media.StoredMedia, error) {
	res, err := s.api.Upload(ctx, in.Body, uploader.UploadParams{
		PublicID:       media.TrimExtension(in.Name),
		Folder:         in.Folder,
		ResourceType:   string(in.Kind),
		Overwrite:      api.Bool(true),
		UniqueFilename: api.Bool(false),
		Transformation: cloudinaryTransformations[in.Kind],
	})
	if err != nil {
		return nil, newError(ctx, "upload", providerCloudinary, err)
	}
	if res == nil {
		return nil, newError(ctx, "upload", providerCloudinary, errors.New("empty response"))
	}
	if res.Error.Message != "" {
		return nil, newError(ctx, "upload", providerCloudinary, errors.New(res.Error.Message))
	}

	stored := &media.StoredMedia{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Kind:     in.Kind,
		FileName: in.Name,
		Size:     int64(res.Bytes),
	}
	if stored.Size == 0 {
		stored.Size = in.Size
	}
	if res.Width > 0 && res.Height > 0 {
		w, h := res.Width, res.Height
		stored.Width, stored.Height = &w, &h
	}
	return stored, nil
}

// Delete destroys an asset. Cloudinary answers "not found" for unknown ids.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, kind media.Kind) error {
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return newError(ctx, "destroy", providerCloudinary, err)
	}
	if res == nil {
		return newError(ctx, "destroy", providerCloudinary, errors.New("empty response"))
	}
	if res.Error.Message != "" {
		return newError(ctx, "destroy", providerCloudinary, errors.New(res.Error.Message))
	}
	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return ErrNotFound
	default:
		return newError(ctx, "destroy", providerCloudinary, fmt.Errorf("unexpected result %q", res.Result))
	}
}
