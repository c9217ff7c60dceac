package domain

type TokenType string

const TokenTypeBearer TokenType = "BEARER"

// Token is the persisted record of a user's current session. Only the
// access token of the latest issued pair is stored; refresh tokens live
// purely as signed strings.
type Token struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	TokenType TokenType `json:"token_type" gorm:"not null"`
	Revoked   bool      `json:"revoked"`
	Expired   bool      `json:"expired"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
}
