package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthenticated means the request carried no usable credentials.
var ErrUnauthenticated = errors.New("authentication required")

// Principal is the authenticated caller.
type Principal struct {
	UserID uint
	Email  string
}

// Authenticator resolves the caller of a request.
type Authenticator interface {
	CurrentUser(r *http.Request) (*Principal, error)
}

// UserLookup confirms a token subject still exists.
type UserLookup interface {
	Exists(ctx context.Context, userID uint) (bool, error)
}

// TokenCookie is the cookie checked when no Authorization header is sent.
const TokenCookie = "token"

// TokenAuthenticator authenticates with a JWT from the Authorization
// header or the token cookie.
type TokenAuthenticator struct {
	tokens *TokenManager
	users  UserLookup
}

// NewTokenAuthenticator builds an authenticator. users may be nil.
func NewTokenAuthenticator(tokens *TokenManager, users UserLookup) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens, users: users}
}

func (a *TokenAuthenticator) CurrentUser(r *http.Request) (*Principal, error) {
	raw := bearerToken(r)
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := a.tokens.ParseToken(raw)
	if err != nil {
		return nil, err
	}

	if a.users != nil {
		ok, err := a.users.Exists(r.Context(), claims.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnauthenticated
		}
	}

	return &Principal{UserID: claims.UserID, Email: claims.Email}, nil
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}
