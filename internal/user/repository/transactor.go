package repository

import "gorm.io/gorm"

// gormTransactor implements Transactor by handing the callback
// repositories bound to a single GORM transaction.
type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a new instance of gormTransactor
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{
		db: db,
	}
}

func (t *gormTransactor) Transaction(fn func(users UserRepository, tokens TokenRepository) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx}, &tokenRepository{db: tx})
	})
}
