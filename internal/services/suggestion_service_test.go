package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/campuslink/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedProfile(userID string, interests ...string) *models.Profile {
	return &models.Profile{UserID: userID, Name: userID, Interests: interests, ProfileCompleted: true}
}

func TestSuggestedUsersRanksBySharedInterests(t *testing.T) {
	profiles := newFakeProfileRepo(
		completedProfile("u-both", "Sports", "Music"),
		completedProfile("u-sports", "Sports", "Chess"),
		completedProfile("u-none", "Cooking"),
	)
	svc := NewSuggestionService(profiles, newFakeFollowRepo())

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports", "Music"}, 5)

	require.Len(t, suggested, 2, "candidates sharing no interest are not suggested")
	assert.Equal(t, "u-both", suggested[0].UserID)
	assert.Equal(t, 2, suggested[0].SharedCount)
	assert.Equal(t, "u-sports", suggested[1].UserID)
	assert.Equal(t, 1, suggested[1].SharedCount)
}

func TestSuggestedUsersExcludesSelfAndFollowed(t *testing.T) {
	profiles := newFakeProfileRepo(
		completedProfile("me", "Sports"),
		completedProfile("friend", "Sports"),
		completedProfile("stranger", "Sports"),
	)
	follows := newFakeFollowRepo()
	require.NoError(t, follows.CreateFollow(context.Background(), &models.Follow{FollowerID: "me", FollowingID: "friend"}))
	svc := NewSuggestionService(profiles, follows)

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 5)

	require.Len(t, suggested, 1)
	assert.Equal(t, "stranger", suggested[0].UserID)
}

func TestSuggestedUsersDuplicateCandidateInterestsCountOnce(t *testing.T) {
	// The score is the size of the interest intersection; a candidate listing
	// the same interest twice must not outrank a genuine two-interest match.
	padded := completedProfile("padded", "Sports", "Sports", "Sports")
	honest := completedProfile("honest", "Sports", "Music")
	svc := NewSuggestionService(newFakeProfileRepo(padded, honest), newFakeFollowRepo())

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports", "Music"}, 5)

	require.Len(t, suggested, 2)
	assert.Equal(t, "honest", suggested[0].UserID)
	assert.Equal(t, 2, suggested[0].SharedCount)
	assert.Equal(t, "padded", suggested[1].UserID)
	assert.Equal(t, 1, suggested[1].SharedCount)
}

func TestSuggestedUsersExcludesIncompleteProfiles(t *testing.T) {
	incomplete := &models.Profile{UserID: "draft", Interests: []string{"Sports"}}
	profiles := newFakeProfileRepo(completedProfile("done", "Sports"), incomplete)
	svc := NewSuggestionService(profiles, newFakeFollowRepo())

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 5)

	require.Len(t, suggested, 1)
	assert.Equal(t, "done", suggested[0].UserID)
}

func TestSuggestedUsersTieBreakIsDeterministic(t *testing.T) {
	// The fake store returns candidates in descending user-id order, so an
	// ascending result proves the tie-break does not lean on store order.
	profiles := newFakeProfileRepo(
		completedProfile("zeta", "Sports"),
		completedProfile("alpha", "Sports"),
		completedProfile("mid", "Sports"),
	)
	svc := NewSuggestionService(profiles, newFakeFollowRepo())

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 5)

	require.Len(t, suggested, 3)
	assert.Equal(t, "alpha", suggested[0].UserID)
	assert.Equal(t, "mid", suggested[1].UserID)
	assert.Equal(t, "zeta", suggested[2].UserID)
}

func TestSuggestedUsersTruncatesToMaxResults(t *testing.T) {
	profiles := newFakeProfileRepo()
	for i := 0; i < 8; i++ {
		profiles.add(completedProfile(fmt.Sprintf("user-%d", i), "Sports"))
	}
	svc := NewSuggestionService(profiles, newFakeFollowRepo())

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 3)

	assert.Len(t, suggested, 3)
}

func TestSuggestedUsersEmptyInputs(t *testing.T) {
	svc := NewSuggestionService(newFakeProfileRepo(completedProfile("x", "Sports")), newFakeFollowRepo())

	assert.Empty(t, svc.SuggestedUsers(context.Background(), "me", nil, 5))
	assert.Empty(t, svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 0))
}

func TestSuggestedUsersFollowLookupFailureFiltersNothing(t *testing.T) {
	profiles := newFakeProfileRepo(completedProfile("friend", "Sports"))
	follows := newFakeFollowRepo()
	follows.followingErr = fmt.Errorf("connection refused")
	svc := NewSuggestionService(profiles, follows)

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 5)

	require.Len(t, suggested, 1)
	assert.Equal(t, "friend", suggested[0].UserID)
}

func TestSuggestedUsersFollowLookupRunsUnderShortDeadline(t *testing.T) {
	profiles := newFakeProfileRepo(completedProfile("friend", "Sports"))
	follows := newFakeFollowRepo()
	svc := NewSuggestionService(profiles, follows)

	svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 5)

	require.NotNil(t, follows.followingCtx)
	deadline, ok := follows.followingCtx.Deadline()
	require.True(t, ok, "the follow-id lookup carries a deadline")
	assert.LessOrEqual(t, time.Until(deadline), shortReadTimeout)
}

func TestSuggestedUsersFollowLookupTimeoutFiltersNothing(t *testing.T) {
	profiles := newFakeProfileRepo(completedProfile("friend", "Sports"))
	follows := newFakeFollowRepo()
	follows.followingErr = context.DeadlineExceeded
	svc := NewSuggestionService(profiles, follows)

	suggested := svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 5)

	require.Len(t, suggested, 1)
	assert.Equal(t, "friend", suggested[0].UserID)
}

func TestSuggestedUsersCandidateLookupFailureSoftensToEmpty(t *testing.T) {
	profiles := newFakeProfileRepo(completedProfile("friend", "Sports"))
	profiles.listErr = fmt.Errorf("connection refused")
	svc := NewSuggestionService(profiles, newFakeFollowRepo())

	assert.Empty(t, svc.SuggestedUsers(context.Background(), "me", []string{"Sports"}, 5))
}
