package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Exists reports whether an active user with id exists.
	Exists(ctx context.Context, id uint) (bool, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) findByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	start := time.Now()
	user, err := r.findByID(ctx, id)
	logger.DBLog("users.exists", time.Since(start), ignoreNotFound(err))
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.CanUpload(), nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	return err
}
