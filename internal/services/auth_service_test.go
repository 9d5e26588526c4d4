package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/dto"
	"glbiashara_backend/internal/models"
	"glbiashara_backend/internal/repositories"
	"glbiashara_backend/pkg/apperrors"
)

type fakeUserRepo struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) findByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Exists(ctx context.Context, id uint) (bool, error) {
	u, err := f.findByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return u.CanUpload(), nil
}

func newTestAuthService(t *testing.T) (AuthService, *auth.TokenManager, *fakeUserRepo) {
	t.Helper()
	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*models.User{
		"amani@example.com":  {BaseModel: models.BaseModel{ID: 42}, Email: "amani@example.com", Name: "Amani", PasswordHash: hash, Status: models.UserStatusActive},
		"banned@example.com": {BaseModel: models.BaseModel{ID: 43}, Email: "banned@example.com", PasswordHash: hash, Status: models.UserStatusSuspended},
	}}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(repo, tokens), tokens, repo
}

func TestLogin_Success(t *testing.T) {
	svc, tokens, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "amani@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, uint(42), resp.User.ID)
	assert.Equal(t, "Amani", resp.User.Name)

	claims, err := tokens.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestLogin_Failures(t *testing.T) {
	svc, _, repo := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "amani@example.com", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "banned@example.com", Password: "hunter2hunter2"})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	repo.err = errors.New("db down")
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "amani@example.com", Password: "hunter2hunter2"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.Equal(t, "Internal server error", appErr.Message, "database details stay server-side")
}
