package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FollowService manages the follow graph between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow subscribes userID to the author named by username. Following
// yourself is rejected; following someone you already follow is a no-op.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return models.NewValidationError("you cannot follow yourself")
	}
	return s.followRepo.Follow(ctx, userID, author.ID)
}

// Unfollow removes the subscription. Unfollowing someone you never followed
// is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.followRepo.Unfollow(ctx, userID, author.ID)
}

// IsFollowing reports whether userID follows the author named by username.
func (s *FollowService) IsFollowing(ctx context.Context, userID uint, username string) (bool, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.IsFollowing(ctx, userID, author.ID)
}
