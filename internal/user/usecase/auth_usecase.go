package usecase

import (
	"fmt"
	"time"

	"connect-backend/internal/user/domain"
	"connect-backend/internal/user/dto"
	"connect-backend/internal/user/repository"
	"connect-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	config    *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		config:    cfg,
	}
}

func (u *authUsecase) IssuePair(userID string) (*dto.AuthResponse, error) {
	accessToken, err := u.signToken(userID, u.config.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.signToken(userID, u.config.JWTRefreshExpiry)
	if err != nil {
		return nil, err
	}

	// The access token replaces every stored token for the user; refresh
	// tokens are never persisted and rest on signature plus expiry alone.
	record := &domain.Token{
		Token:     accessToken,
		TokenType: domain.TokenTypeBearer,
		UserID:    userID,
	}
	if err := u.tokenRepo.Replace(userID, record); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *authUsecase) Validate(token, userID string) bool {
	claims, err := u.parseToken(token, jwt.WithExpirationRequired())
	if err != nil {
		return false
	}
	return claims.Subject == userID
}

func (u *authUsecase) ExtractSubject(token string) (string, error) {
	claims, err := u.parseToken(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	return claims.Subject, nil
}

func (u *authUsecase) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", domain.ErrValidation)
	}

	subject, err := u.ExtractSubject(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with id %q", domain.ErrNotFound, subject)
	}

	if !u.Validate(refreshToken, user.ID) {
		return nil, fmt.Errorf("%w: refresh token is invalid or expired", domain.ErrAuthentication)
	}

	return u.IssuePair(user.ID)
}

func (u *authUsecase) RevokeAll(userID string) error {
	return u.tokenRepo.DeleteAllByUser(userID)
}

// Authenticate accepts an access token only while it is both
// cryptographically valid and still present in the token store, so
// deleting stored tokens ends the session immediately.
func (u *authUsecase) Authenticate(token string) (string, error) {
	subject, err := u.ExtractSubject(token)
	if err != nil {
		return "", err
	}
	if !u.Validate(token, subject) {
		return "", fmt.Errorf("%w: token is invalid or expired", domain.ErrAuthentication)
	}

	stored, err := u.tokenRepo.FindAllByUser(subject)
	if err != nil {
		return "", err
	}
	for _, t := range stored {
		if t.Token == token && !t.Revoked && !t.Expired {
			return subject, nil
		}
	}
	return "", fmt.Errorf("%w: no active session for token", domain.ErrAuthentication)
}

func (u *authUsecase) signToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		// The jti claim keeps tokens unique even when two are signed
		// within the same second.
		ID:        uuid.New().String(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

// parseToken verifies the HMAC signature and, unless disabled via options,
// the registered claims. Expiry is strict: a token is rejected from its
// expiration instant onward.
func (u *authUsecase) parseToken(tokenString string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(u.config.JWTSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	return claims, nil
}
