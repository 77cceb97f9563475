package services

import (
	"context"
	"log"

	"github.com/campuslink/backend/internal/cache"
	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
)

// ProfileService owns profile lookups, the profile cache, and the
// denormalizing joins that attach author snippets to other records.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
	cache       *cache.ProfileCache
}

// NewProfileService creates a ProfileService
func NewProfileService(profileRepo repositories.ProfileRepository, profileCache *cache.ProfileCache) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, cache: profileCache}
}

// GetProfile returns the profile for userID, serving from the cache when the
// entry is fresh. Store failures and timeouts soften to nil; callers treat
// nil as "profile absent".
func (s *ProfileService) GetProfile(ctx context.Context, userID string) *models.Profile {
	if cached := s.cache.Get(userID); cached != nil {
		return cached
	}

	rctx, cancel := readCtx(ctx)
	defer cancel()

	profile, err := s.profileRepo.GetProfileByUserID(rctx, userID)
	if err != nil {
		log.Printf("GetProfile %s: %v", userID, err)
		return nil
	}
	if profile == nil {
		return nil
	}
	s.cache.Put(userID, profile)
	return profile
}

// Snippet returns the denormalized identity for userID, or nil when the
// profile is absent
func (s *ProfileService) Snippet(ctx context.Context, userID string) *models.ProfileSnippet {
	return s.GetProfile(ctx, userID).Snippet()
}

// SnippetMap resolves profile snippets for a set of user ids, capped at
// maxLookups unique ids. Failed lookups are skipped.
func (s *ProfileService) SnippetMap(ctx context.Context, userIDs []string, maxLookups int) map[string]*models.ProfileSnippet {
	snippets := make(map[string]*models.ProfileSnippet)
	for _, id := range userIDs {
		if _, seen := snippets[id]; seen {
			continue
		}
		if maxLookups > 0 && len(snippets) >= maxLookups {
			break
		}
		snippets[id] = s.Snippet(ctx, id)
	}
	return snippets
}

// CreateProfile creates a profile and primes the cache with it
func (s *ProfileService) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
		return err
	}
	s.cache.Put(profile.UserID, profile)
	return nil
}

// UpdateProfile applies a partial update and invalidates the cached entry
func (s *ProfileService) UpdateProfile(ctx context.Context, profile *models.Profile, req *models.UpdateProfileRequest) error {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.Interests != nil {
		set["interests"] = *req.Interests
	}
	if req.SubInterests != nil {
		set["sub_interests"] = *req.SubInterests
	}
	if req.SkillLevel != nil {
		set["skill_level"] = *req.SkillLevel
	}
	if req.City != nil {
		set["city"] = *req.City
	}
	if req.LookingFor != nil {
		set["looking_for"] = *req.LookingFor
	}
	if req.StudentType != nil {
		set["student_type"] = *req.StudentType
	}
	if req.Department != nil {
		set["department"] = *req.Department
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.AvatarURL != nil {
		set["avatar_url"] = *req.AvatarURL
	}
	if req.ProfileCompleted != nil {
		set["profile_completed"] = *req.ProfileCompleted
	}
	if len(set) == 0 {
		return nil
	}

	if err := s.profileRepo.UpdateProfile(ctx, profile.ID.Hex(), set); err != nil {
		return err
	}
	s.cache.Invalidate(profile.UserID)
	return nil
}

// DiscoverProfiles lists completed profiles for the discover page, with
// optional skill-level and interest filters. Soft-fails to empty.
func (s *ProfileService) DiscoverProfiles(ctx context.Context, excludeUserID, skillLevel, interest string, limit int64) []models.Profile {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	profiles, err := s.profileRepo.ListProfiles(rctx, repositories.ProfileFilter{
		SkillLevel:    skillLevel,
		Interest:      interest,
		ExcludeUserID: excludeUserID,
		CompletedOnly: true,
	}, limit)
	if err != nil {
		log.Printf("DiscoverProfiles: %v", err)
		return []models.Profile{}
	}
	return profiles
}
