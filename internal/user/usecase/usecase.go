package usecase

import (
	"context"

	"connect-backend/internal/user/dto"
)

// AuthUsecase issues and verifies signed session tokens backed by the
// token store.
type AuthUsecase interface {
	// IssuePair builds a signed access/refresh pair for the user. All
	// previously stored tokens for the user are deleted first; the new
	// access token becomes the only session record.
	IssuePair(userID string) (*dto.AuthResponse, error)

	// Validate reports whether the token verifies, belongs to userID and
	// has not expired. Fails closed.
	Validate(token, userID string) bool

	// ExtractSubject returns the user id a token was issued for. The
	// signature is verified, expiry is not.
	ExtractSubject(token string) (string, error)

	// Refresh exchanges a still-valid refresh token for a new pair.
	Refresh(refreshToken string) (*dto.AuthResponse, error)

	// RevokeAll deletes every stored token for the user. An outstanding
	// refresh token stays cryptographically valid until its own expiry.
	RevokeAll(userID string) error

	// Authenticate verifies a presented access token against both its
	// signature and the stored session record, returning the subject.
	Authenticate(token string) (string, error)
}

// UserUsecase covers the account lifecycle.
type UserUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (string, *dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Edit(ctx context.Context, req *dto.EditRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
	RevokeAccess(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
}

// FollowUsecase maintains the mirrored follow graph.
type FollowUsecase interface {
	Follow(ctx context.Context, userID, targetID string) (*dto.UserResponse, error)
	Unfollow(ctx context.Context, userID, targetID string) error
	GetFollowers(ctx context.Context, id string) ([]*dto.UserResponse, error)
}
