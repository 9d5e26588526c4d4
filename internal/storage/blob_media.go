package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"glbiashara_backend/internal/imageprocessor"
	"glbiashara_backend/internal/media"
)

// BlobMediaStore adapts an ObjectStorage to MediaStore. Blob stores cannot
// transform on delivery, so images are bounded before they are written.
type BlobMediaStore struct {
	provider  string
	objects   ObjectStorage
	processor *imageprocessor.Processor
}

func NewBlobMediaStore(provider string, objects ObjectStorage, imageQuality int) *BlobMediaStore {
	return &BlobMediaStore{
		provider:  provider,
		objects:   objects,
		processor: imageprocessor.NewProcessor(imageQuality),
	}
}

func (s *BlobMediaStore) Provider() string {
	return s.provider
}

// Store writes the asset to <folder>/<name>. The key doubles as public id.
func (s *BlobMediaStore) Store(ctx context.Context, in StoreInput) (*media.StoredMedia, error) {
	key := path.Join(in.Folder, in.Name)
	stored := &media.StoredMedia{
		PublicID: key,
		Kind:     in.Kind,
		FileName: in.Name,
	}

	var body io.Reader
	var counter *countingReader
	if in.Kind == media.KindImage {
		data, err := io.ReadAll(io.LimitReader(in.Body, media.MaxImageSize+1))
		if err != nil {
			return nil, newError(ctx, "read", s.provider, err)
		}
		data, err = s.boundImage(data, in.MimeType, stored)
		if err != nil {
			return nil, err
		}
		stored.Size = int64(len(data))
		body = bytes.NewReader(data)
	} else {
		counter = &countingReader{r: in.Body}
		body = counter
	}

	if err := s.objects.Save(ctx, key, body, in.MimeType); err != nil {
		return nil, newError(ctx, "store", s.provider, err)
	}
	if counter != nil {
		stored.Size = counter.n
	}
	stored.URL = s.objects.GetURL(key)

	return stored, nil
}

// Delete removes an asset by public id.
func (s *BlobMediaStore) Delete(ctx context.Context, publicID string, kind media.Kind) error {
	if err := s.objects.Delete(ctx, publicID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return newError(ctx, "delete", s.provider, err)
	}
	return nil
}

// formatExt maps image.DecodeConfig format names to canonical extensions.
var formatExt = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

// boundImage fits the image into media.ImageBounds. Bytes that do not
// decode as mimeType are refused, so a blob store never serves anything
// but the image it claims to hold.
func (s *BlobMediaStore) boundImage(data []byte, mimeType string, stored *media.StoredMedia) ([]byte, error) {
	b := media.ImageBounds
	res, err := s.processor.Bound(data, b.Width, b.Height)
	switch {
	case errors.Is(err, imageprocessor.ErrTooManyPixels):
		return nil, fmt.Errorf("%w: %v", ErrImageDimensions, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if formatExt[res.Format] != media.CanonicalExtension(mimeType) {
		return nil, fmt.Errorf("%w: %s content declared as %s", ErrInvalidImage, res.Format, mimeType)
	}

	stored.Width = &res.Width
	stored.Height = &res.Height
	return res.Data, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
