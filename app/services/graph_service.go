package services

import (
	"context"
	"errors"
	"fmt"

	"socialgraph/app/models"
	"socialgraph/app/repositories"
)

// GraphService manages follow edges between users
type GraphService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
}

// NewGraphService creates a new GraphService
func NewGraphService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *GraphService {
	return &GraphService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// FollowUser adds target to the actor's following set. Following someone
// twice is not an error.
func (s *GraphService) FollowUser(ctx context.Context, actor models.Identity, targetID uint) (*models.User, error) {
	if targetID == actor.UserID {
		return nil, ErrCannotFollowSelf
	}

	target, err := s.lookupTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if _, err := s.followRepo.Add(ctx, actor.UserID, target.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to follow user %d: %w", target.ID, err)
	}
	return target, nil
}

// UnfollowUser removes target from the actor's following set. It succeeds
// when no edge exists.
func (s *GraphService) UnfollowUser(ctx context.Context, actor models.Identity, targetID uint) (*models.User, error) {
	target, err := s.lookupTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if _, err := s.followRepo.Remove(ctx, actor.UserID, target.ID); err != nil {
		return nil, fmt.Errorf("failed to unfollow user %d: %w", target.ID, err)
	}
	return target, nil
}

// GetProfile returns the actor's username and follow counts
func (s *GraphService) GetProfile(ctx context.Context, actor models.Identity) (*models.Profile, error) {
	followers, err := s.followRepo.CountFollowers(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	following, err := s.followRepo.CountFollowing(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	return &models.Profile{
		Username:  actor.Username,
		Followers: followers,
		Following: following,
	}, nil
}

func (s *GraphService) lookupTarget(ctx context.Context, id uint) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return target, nil
}
