package repository

import "connect-backend/internal/user/domain"

// UserRepository defines persistence operations for user records. Lookup
// methods return (nil, nil) when no record matches.
type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)

	// FindByIDForUpdate locks the row for the remainder of the enclosing
	// transaction. Every read-modify-write of a user row must go through
	// it, or a concurrent writer can overwrite the edge sets between the
	// read and the save.
	FindByIDForUpdate(id string) (*domain.User, error)

	Update(user *domain.User) error
	Delete(user *domain.User) error
}

// TokenRepository defines persistence operations for session token records.
type TokenRepository interface {
	FindAllByUser(userID string) ([]*domain.Token, error)
	Save(token *domain.Token) error
	Delete(token *domain.Token) error
	DeleteAllByUser(userID string) error

	// Replace deletes every stored token for the user and persists the new
	// record as the current session, all inside one transaction.
	Replace(userID string, token *domain.Token) error
}

// Transactor runs a function against transaction-scoped repositories so
// that multi-record writes commit or roll back as a unit.
type Transactor interface {
	Transaction(fn func(users UserRepository, tokens TokenRepository) error) error
}
