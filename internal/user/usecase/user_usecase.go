package usecase

import (
	"context"
	"fmt"

	"connect-backend/internal/user/domain"
	"connect-backend/internal/user/dto"
	"connect-backend/internal/user/repository"
	"connect-backend/pkg/cache"

	"github.com/sirupsen/logrus"
)

// userUsecase implements UserUsecase
type userUsecase struct {
	userRepo repository.UserRepository
	tx       repository.Transactor
	auth     AuthUsecase
	cache    cache.UserCache
	logger   *logrus.Logger
}

// NewUserUsecase creates a new instance of userUsecase
func NewUserUsecase(userRepo repository.UserRepository, tx repository.Transactor, auth AuthUsecase, userCache cache.UserCache, logger *logrus.Logger) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		tx:       tx,
		auth:     auth,
		cache:    userCache,
		logger:   logger,
	}
}

func (u *userUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (string, *dto.AuthResponse, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, fmt.Errorf("%w: email already registered", domain.ErrValidation)
	}

	existing, err = u.userRepo.FindByUsername(req.Username)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, fmt.Errorf("%w: username already taken", domain.ErrValidation)
	}

	hashed, err := repository.HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	// Role is fixed at creation and never mutated by edits.
	role := domain.RoleUser
	if req.Role == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
	}
	if err := u.userRepo.Create(user); err != nil {
		return "", nil, err
	}

	pair, err := u.auth.IssuePair(user.ID)
	if err != nil {
		return "", nil, err
	}
	return user.ID, pair, nil
}

func (u *userUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, fmt.Errorf("%w: invalid username or password", domain.ErrAuthentication)
	}

	return u.auth.IssuePair(user.ID)
}

func (u *userUsecase) Edit(ctx context.Context, req *dto.EditRequest) (*dto.UserResponse, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	hashed, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// The record is read under a row lock inside the transaction so a
	// concurrently committed edge write cannot be overwritten by a stale
	// snapshot of the user row.
	var user *domain.User
	err = u.tx.Transaction(func(users repository.UserRepository, tokens repository.TokenRepository) error {
		var err error
		user, err = users.FindByIDForUpdate(req.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: user with id %q", domain.ErrNotFound, req.ID)
		}

		if other, err := users.FindByEmail(req.Email); err != nil {
			return err
		} else if other != nil && other.ID != user.ID {
			return fmt.Errorf("%w: email already registered", domain.ErrValidation)
		}
		if other, err := users.FindByUsername(req.Username); err != nil {
			return err
		} else if other != nil && other.ID != user.ID {
			return fmt.Errorf("%w: username already taken", domain.ErrValidation)
		}

		user.Username = req.Username
		user.Firstname = req.Firstname
		user.Lastname = req.Lastname
		user.Email = req.Email
		user.Password = hashed

		// Editing invalidates every live session: stored tokens go away in
		// the same transaction as the record update.
		if err := tokens.DeleteAllByUser(user.ID); err != nil {
			return err
		}
		return users.Update(user)
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, user.ID)
	return dto.NewUserResponse(user), nil
}

func (u *userUsecase) Delete(ctx context.Context, id string) error {
	var touched []string
	err := u.tx.Transaction(func(users repository.UserRepository, tokens repository.TokenRepository) error {
		// Lock the row so the cascade walks the Following set as of the
		// transaction, not an earlier snapshot.
		user, err := users.FindByIDForUpdate(id)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: user with id %q", domain.ErrNotFound, id)
		}

		if err := tokens.DeleteAllByUser(user.ID); err != nil {
			return err
		}
		touched, err = removeForwardEdges(users, user)
		if err != nil {
			return err
		}
		return users.Delete(user)
	})
	if err != nil {
		return err
	}

	u.invalidate(ctx, id)
	for _, followeeID := range touched {
		u.invalidate(ctx, followeeID)
	}
	return nil
}

func (u *userUsecase) RevokeAccess(ctx context.Context, id string) error {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user with id %q", domain.ErrNotFound, id)
	}
	return u.auth.RevokeAll(user.ID)
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	cached, err := u.cache.Get(ctx, id)
	if err != nil {
		u.logger.WithError(err).Warn("user cache read failed")
	}
	if cached != nil {
		return dto.NewUserResponse(cached), nil
	}

	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with id %q", domain.ErrNotFound, id)
	}

	if err := u.cache.Set(ctx, id, user); err != nil {
		u.logger.WithError(err).Warn("user cache write failed")
	}
	return dto.NewUserResponse(user), nil
}

func (u *userUsecase) invalidate(ctx context.Context, id string) {
	if err := u.cache.Invalidate(ctx, id); err != nil {
		u.logger.WithError(err).WithField("user_id", id).Warn("user cache invalidation failed")
	}
}
