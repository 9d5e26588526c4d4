package services

import (
	"context"
	"errors"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/dto"
	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/repositories"
	"glbiashara_backend/pkg/apperrors"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login checks the credentials and issues an access token.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrDatabase(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.CanUpload() {
		logger.CtxWarn(ctx, "login refused: account suspended", "user_id", user.ID)
		return nil, apperrors.ErrForbidden
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User: dto.UserDTO{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}
