package services

import (
	"context"
	"log"
	"sort"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// SuggestedUser is a candidate profile scored by how many interests it
// shares with the requesting user.
type SuggestedUser struct {
	models.Profile
	SharedCount int `json:"shared_count"`
}

// SuggestionService computes the "people you may like" list.
type SuggestionService struct {
	profileRepo repositories.ProfileRepository
	followRepo  repositories.FollowRepository
}

// NewSuggestionService creates a SuggestionService
func NewSuggestionService(profileRepo repositories.ProfileRepository, followRepo repositories.FollowRepository) *SuggestionService {
	return &SuggestionService{profileRepo: profileRepo, followRepo: followRepo}
}

// SuggestedUsers returns up to maxResults completed profiles sharing at
// least one interest with the user, excluding the user and anyone they
// already follow, ordered by descending shared-interest count. Ties order by
// ascending user id so the ranking is deterministic regardless of store
// order. Store failures soften to an empty list.
func (s *SuggestionService) SuggestedUsers(ctx context.Context, userID string, userInterests []string, maxResults int) []SuggestedUser {
	if maxResults <= 0 || len(userInterests) == 0 {
		return []SuggestedUser{}
	}

	// Already-followed ids, fetched under the short read budget; a failed
	// or timed-out lookup filters nothing rather than failing the whole
	// suggestion list.
	followed := make(map[string]bool)
	sctx, cancelShort := shortReadCtx(ctx)
	ids, err := s.followRepo.GetFollowingIDs(sctx, userID)
	cancelShort()
	if err != nil {
		log.Printf("SuggestedUsers following lookup: %v", err)
	} else {
		for _, id := range ids {
			followed[id] = true
		}
	}

	rctx, cancel := readCtx(ctx)
	defer cancel()

	candidates, err := s.profileRepo.ListProfiles(rctx, repositories.ProfileFilter{
		AnyInterests:  userInterests,
		ExcludeUserID: userID,
		CompletedOnly: true,
	}, int64(maxResults*2))
	if err != nil {
		log.Printf("SuggestedUsers candidate lookup: %v", err)
		return []SuggestedUser{}
	}

	interestSet := make(map[string]bool, len(userInterests))
	for _, interest := range userInterests {
		interestSet[interest] = true
	}

	suggested := make([]SuggestedUser, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.UserID == userID || followed[candidate.UserID] {
			continue
		}
		// Score is the size of the interest intersection; repeated entries
		// in a candidate's list count once.
		shared := 0
		counted := make(map[string]bool, len(candidate.Interests))
		for _, interest := range candidate.Interests {
			if interestSet[interest] && !counted[interest] {
				counted[interest] = true
				shared++
			}
		}
		suggested = append(suggested, SuggestedUser{Profile: candidate, SharedCount: shared})
	}

	sort.SliceStable(suggested, func(i, j int) bool {
		if suggested[i].SharedCount != suggested[j].SharedCount {
			return suggested[i].SharedCount > suggested[j].SharedCount
		}
		return suggested[i].UserID < suggested[j].UserID
	})

	if len(suggested) > maxResults {
		suggested = suggested[:maxResults]
	}
	return suggested
}
