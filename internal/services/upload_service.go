package services

import (
	"context"
	"errors"
	"time"

	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/media"
	"glbiashara_backend/internal/metrics"
	"glbiashara_backend/internal/storage"
	"glbiashara_backend/pkg/apperrors"
)

// ============================================
// UPLOAD SERVICE
// ============================================

// UploadService runs the upload pipeline: resolve type, validate, name,
// store. It never retries and never touches the database.
type UploadService interface {
	Upload(ctx context.Context, req *media.UploadRequest) (*media.StoredMedia, error)
	Delete(ctx context.Context, userID uint, publicID string, kind media.Kind) error
}

type UploadConfig struct {
	Namespace string
	Timeout   time.Duration
}

const DefaultUploadTimeout = 30 * time.Second

type uploadService struct {
	store     storage.MediaStore
	namespace string
	timeout   time.Duration
	metrics   *metrics.Metrics
}

func NewUploadService(store storage.MediaStore, cfg UploadConfig, m *metrics.Metrics) UploadService {
	if cfg.Namespace == "" {
		cfg.Namespace = media.DefaultNamespace
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultUploadTimeout
	}
	return &uploadService{
		store:     store,
		namespace: cfg.Namespace,
		timeout:   cfg.Timeout,
		metrics:   m,
	}
}

func (s *uploadService) Upload(ctx context.Context, req *media.UploadRequest) (*media.StoredMedia, error) {
	if req == nil {
		req = &media.UploadRequest{}
	}

	if req.File != nil {
		mimeType, body, err := media.ResolveMimeType(req.MimeType, req.File)
		if err != nil {
			logger.CtxWithError(ctx, "failed to read upload head", err,
				"op", "resolve_mime", "user_id", req.UserID, "file", req.OriginalName)
			s.metrics.Upload("", metrics.OutcomeInternalError)
			return nil, apperrors.InternalError(err)
		}
		req.MimeType, req.File = mimeType, body
	}

	result := media.Validate(req)
	if !result.Accepted {
		logger.CtxInfo(ctx, "upload rejected",
			"reason", result.Reason, "mime", req.MimeType, "size", req.Size, "declared_type", req.DeclaredType)
		s.metrics.Upload(string(result.Kind), metrics.OutcomeRejected)
		return nil, rejectionError(result)
	}

	in := storage.StoreInput{
		Body:     req.File,
		Name:     media.GenerateStorageNameFor(req.OriginalName, req.MimeType),
		Kind:     result.Kind,
		Folder:   media.Folder(s.namespace, req.UserID, result.Kind),
		MimeType: req.MimeType,
		Size:     req.Size,
	}

	logger.CtxDebug(ctx, "upload accepted",
		"storage_name", in.Name, "folder", in.Folder, "mime", in.MimeType, "size", in.Size)

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	stored, err := s.store.Store(storeCtx, in)
	s.metrics.ObserveStorage(s.store.Provider(), string(result.Kind), time.Since(start))
	if contentErr := contentError(err); contentErr != nil {
		logger.CtxInfo(ctx, "upload rejected by content check",
			"error", err.Error(), "mime", req.MimeType, "file", req.OriginalName)
		s.metrics.Upload(string(result.Kind), metrics.OutcomeRejected)
		return nil, contentErr
	}
	if err != nil {
		logger.CtxWithError(ctx, "storage dispatch failed", err,
			"op", "store",
			"provider", s.store.Provider(),
			"timeout", storage.IsTimeout(err),
			"user_id", req.UserID,
			"file", req.OriginalName,
			"storage_name", in.Name,
		)
		s.metrics.Upload(string(result.Kind), metrics.OutcomeStorageError)
		return nil, apperrors.ErrStorage(err)
	}

	logger.CtxInfo(ctx, "upload stored",
		"public_id", stored.PublicID, "kind", stored.Kind, "size", stored.Size, "declared_type", req.DeclaredType)
	s.metrics.Upload(string(result.Kind), metrics.OutcomeSuccess)
	return stored, nil
}

// Delete removes an asset the caller owns. Ownership is read from the
// public id itself, which always starts with the owner's folder.
func (s *uploadService) Delete(ctx context.Context, userID uint, publicID string, kind media.Kind) error {
	if !kind.Valid() {
		return apperrors.ErrInvalidMediaType
	}
	if !media.OwnsPublicID(s.namespace, userID, kind, publicID) {
		logger.CtxWarn(ctx, "delete of foreign asset refused", "public_id", publicID)
		return apperrors.ErrForbidden
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.store.Delete(storeCtx, publicID, kind)
	switch {
	case err == nil:
		logger.CtxInfo(ctx, "asset deleted", "public_id", publicID)
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.ErrNotFound(err)
	default:
		logger.CtxWithError(ctx, "storage delete failed", err,
			"op", "delete", "provider", s.store.Provider(), "user_id", userID, "public_id", publicID)
		return apperrors.ErrDeleteFailed.WithError(err)
	}
}

// contentError maps store refusals of the payload itself to client errors.
func contentError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, storage.ErrInvalidImage):
		return apperrors.ErrInvalidImageContent
	case errors.Is(err, storage.ErrImageDimensions):
		return apperrors.ErrImageDimensions
	default:
		return nil
	}
}

func rejectionError(r media.ValidationResult) *apperrors.AppError {
	switch r.Reason {
	case media.ReasonMissingFile:
		return apperrors.ErrNoFile
	case media.ReasonUnsupportedType:
		return apperrors.ErrInvalidFileType
	case media.ReasonTooLarge:
		if r.Kind == media.KindVideo {
			return apperrors.ErrVideoTooLarge
		}
		return apperrors.ErrImageTooLarge
	default:
		return apperrors.NewBadRequestError(r.Message)
	}
}
