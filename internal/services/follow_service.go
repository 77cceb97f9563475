package services

import (
	"context"
	"fmt"
	"log"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// FollowService owns the follow graph.
type FollowService struct {
	followRepo repositories.FollowRepository
	profiles   *ProfileService
	notifier   *Notifier
}

// NewFollowService creates a FollowService
func NewFollowService(followRepo repositories.FollowRepository, profiles *ProfileService, notifier *Notifier) *FollowService {
	return &FollowService{followRepo: followRepo, profiles: profiles, notifier: notifier}
}

// Follow creates the directed edge and notifies the followed user
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return fmt.Errorf("cannot follow yourself")
	}

	following, err := s.followRepo.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if following {
		return fmt.Errorf("already following")
	}

	if err := s.followRepo.CreateFollow(ctx, &models.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
		return err
	}

	s.notifier.Followed(ctx, followingID, followerID)
	return nil
}

// Unfollow removes the edge; no notification is sent
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	return s.followRepo.DeleteFollow(ctx, followerID, followingID)
}

// IsFollowing reports whether the edge exists
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followingID)
}

// Counts returns follower/following totals
func (s *FollowService) Counts(ctx context.Context, userID string) (*models.FollowCounts, error) {
	return s.followRepo.GetFollowCounts(ctx, userID)
}

// Followers lists the profiles of a user's followers. Users without a
// profile are skipped. Soft-fails to empty.
func (s *FollowService) Followers(ctx context.Context, userID string) []models.Profile {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	ids, err := s.followRepo.GetFollowerIDs(rctx, userID)
	if err != nil {
		log.Printf("Followers %s: %v", userID, err)
		return []models.Profile{}
	}
	return s.resolveProfiles(ctx, ids)
}

// Following lists the profiles a user follows
func (s *FollowService) Following(ctx context.Context, userID string) []models.Profile {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	ids, err := s.followRepo.GetFollowingIDs(rctx, userID)
	if err != nil {
		log.Printf("Following %s: %v", userID, err)
		return []models.Profile{}
	}
	return s.resolveProfiles(ctx, ids)
}

func (s *FollowService) resolveProfiles(ctx context.Context, userIDs []string) []models.Profile {
	profiles := make([]models.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if profile := s.profiles.GetProfile(ctx, id); profile != nil {
			profiles = append(profiles, *profile)
		}
	}
	return profiles
}
