package repository

import (
	"connect-backend/internal/user/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tokenRepository implements TokenRepository on top of GORM
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new instance of tokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

func (r *tokenRepository) FindAllByUser(userID string) ([]*domain.Token, error) {
	var tokens []*domain.Token
	err := r.db.Where("user_id = ?", userID).Find(&tokens).Error
	return tokens, err
}

func (r *tokenRepository) Save(token *domain.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	return r.db.Create(token).Error
}

func (r *tokenRepository) Delete(token *domain.Token) error {
	return r.db.Delete(&domain.Token{}, "id = ?", token.ID).Error
}

func (r *tokenRepository) DeleteAllByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.Token{}).Error
}

// Replace swaps the user's stored session for the new token. Issuing a new
// pair leaves no token history, only the current session.
func (r *tokenRepository) Replace(userID string, token *domain.Token) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Token{}).Error; err != nil {
			return err
		}
		if token.ID == "" {
			token.ID = uuid.New().String()
		}
		return tx.Create(token).Error
	})
}
