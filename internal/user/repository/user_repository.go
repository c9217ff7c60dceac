package repository

import (
	"errors"
	"time"

	"connect-backend/internal/user/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements UserRepository on top of GORM
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	return findOneUser(r.db, "id = ?", id)
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	return findOneUser(r.db, "username = ?", username)
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	return findOneUser(r.db, "email = ?", email)
}

func (r *userRepository) FindByIDForUpdate(id string) (*domain.User, error) {
	db := r.db
	// SELECT ... FOR UPDATE is only meaningful on postgres; sqlite
	// serializes writers at the database level and rejects the clause.
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return findOneUser(db, "id = ?", id)
}

func findOneUser(db *gorm.DB, query string, arg string) (*domain.User, error) {
	var user domain.User
	err := db.Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *domain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(user *domain.User) error {
	return r.db.Delete(&domain.User{}, "id = ?", user.ID).Error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
