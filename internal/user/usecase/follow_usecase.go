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

// followUsecase implements FollowUsecase. Every edge lives on both
// endpoints: target in user.Following and user in target.Followers. Both
// rows are written in one transaction so a half-applied edge is never
// visible outside it.
type followUsecase struct {
	userRepo repository.UserRepository
	tx       repository.Transactor
	cache    cache.UserCache
	logger   *logrus.Logger
}

// NewFollowUsecase creates a new instance of followUsecase
func NewFollowUsecase(userRepo repository.UserRepository, tx repository.Transactor, userCache cache.UserCache, logger *logrus.Logger) FollowUsecase {
	return &followUsecase{
		userRepo: userRepo,
		tx:       tx,
		cache:    userCache,
		logger:   logger,
	}
}

func (u *followUsecase) Follow(ctx context.Context, userID, targetID string) (*dto.UserResponse, error) {
	var updated *domain.User
	err := u.tx.Transaction(func(users repository.UserRepository, tokens repository.TokenRepository) error {
		user, target, err := findPair(users, userID, targetID)
		if err != nil {
			return err
		}

		updated = user
		if user.Following.Contains(targetID) {
			return nil // already followed, idempotent
		}

		user.Following = user.Following.Add(targetID)
		target.Followers = target.Followers.Add(userID)
		if err := users.Update(user); err != nil {
			return err
		}
		if target != user {
			return users.Update(target)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, userID, targetID)
	return dto.NewUserResponse(updated), nil
}

func (u *followUsecase) Unfollow(ctx context.Context, userID, targetID string) error {
	err := u.tx.Transaction(func(users repository.UserRepository, tokens repository.TokenRepository) error {
		user, target, err := findPair(users, userID, targetID)
		if err != nil {
			return err
		}

		if !user.Following.Contains(targetID) {
			return nil // nothing to remove
		}

		user.Following = user.Following.Remove(targetID)
		target.Followers = target.Followers.Remove(userID)
		if err := users.Update(user); err != nil {
			return err
		}
		if target != user {
			return users.Update(target)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.invalidate(ctx, userID, targetID)
	return nil
}

func (u *followUsecase) GetFollowers(ctx context.Context, id string) ([]*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with id %q", domain.ErrNotFound, id)
	}

	followers := make([]*dto.UserResponse, 0, len(user.Followers))
	for _, followerID := range user.Followers {
		follower, err := u.userRepo.FindByID(followerID)
		if err != nil {
			return nil, err
		}
		if follower == nil {
			continue
		}
		followers = append(followers, dto.NewUserResponse(follower))
	}
	return followers, nil
}

// findPair resolves both endpoints of an edge mutation under row locks, so
// a concurrent writer cannot slip an edge in between the read and the save.
// Rows are locked in id order to keep opposing mutations on the same pair
// from deadlocking. A self-referential pair resolves to a single record so
// both set updates land on one row.
func findPair(users repository.UserRepository, userID, targetID string) (*domain.User, *domain.User, error) {
	if targetID == userID {
		user, err := users.FindByIDForUpdate(userID)
		if err != nil {
			return nil, nil, err
		}
		if user == nil {
			return nil, nil, fmt.Errorf("%w: user with id %q", domain.ErrNotFound, userID)
		}
		return user, user, nil
	}

	firstID, secondID := userID, targetID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	pair := make(map[string]*domain.User, 2)
	for _, id := range []string{firstID, secondID} {
		record, err := users.FindByIDForUpdate(id)
		if err != nil {
			return nil, nil, err
		}
		if record == nil {
			return nil, nil, fmt.Errorf("%w: user with id %q", domain.ErrNotFound, id)
		}
		pair[id] = record
	}
	return pair[userID], pair[targetID], nil
}

// removeForwardEdges is the deletion cascade: the deleted user disappears
// from each followee's follower set. Users following the deleted user keep
// the stale id in their own following set; see DESIGN.md.
func removeForwardEdges(users repository.UserRepository, user *domain.User) ([]string, error) {
	touched := make([]string, 0, len(user.Following))
	for _, followeeID := range user.Following {
		followee, err := users.FindByIDForUpdate(followeeID)
		if err != nil {
			return nil, err
		}
		if followee == nil {
			continue
		}
		followee.Followers = followee.Followers.Remove(user.ID)
		if err := users.Update(followee); err != nil {
			return nil, err
		}
		touched = append(touched, followeeID)
	}
	return touched, nil
}

func (u *followUsecase) invalidate(ctx context.Context, ids ...string) {
	for _, id := range ids {
		if err := u.cache.Invalidate(ctx, id); err != nil {
			u.logger.WithError(err).WithField("user_id", id).Warn("user cache invalidation failed")
		}
	}
}
