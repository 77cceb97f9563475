package services

import (
	"context"
	"testing"

	"github.com/campuslink/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type followFixture struct {
	svc           *FollowService
	follows       *fakeFollowRepo
	notifications *fakeNotificationRepo
}

func newFollowFixture(profiles *fakeProfileRepo) *followFixture {
	follows := newFakeFollowRepo()
	notifications := newFakeNotificationRepo()
	profileService := newTestProfileService(profiles)
	return &followFixture{
		svc:           NewFollowService(follows, profileService, NewNotifier(notifications, profileService)),
		follows:       follows,
		notifications: notifications,
	}
}

func TestFollowCreatesEdgeAndNotifies(t *testing.T) {
	f := newFollowFixture(newFakeProfileRepo(&models.Profile{UserID: "alice", Name: "Alice"}))
	ctx := context.Background()

	require.NoError(t, f.svc.Follow(ctx, "alice", "bob"))

	following, err := f.svc.IsFollowing(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)

	// Follows are directed; the reverse edge does not exist.
	reverse, err := f.svc.IsFollowing(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.False(t, reverse)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, "bob", n.UserID)
	assert.Equal(t, models.NotificationTypeFollow, n.Type)
	assert.Equal(t, "Alice started following you", n.Content)
	assert.Equal(t, "/user/alice", n.Link)
}

func TestFollowSelfRejected(t *testing.T) {
	f := newFollowFixture(newFakeProfileRepo())
	err := f.svc.Follow(context.Background(), "alice", "alice")
	require.EqualError(t, err, "cannot follow yourself")
}

func TestFollowTwiceRejected(t *testing.T) {
	f := newFollowFixture(newFakeProfileRepo())
	ctx := context.Background()

	require.NoError(t, f.svc.Follow(ctx, "alice", "bob"))
	err := f.svc.Follow(ctx, "alice", "bob")
	require.EqualError(t, err, "already following")
	assert.Len(t, f.notifications.notifications, 1)
}

func TestUnfollowRemovesEdgeSilently(t *testing.T) {
	f := newFollowFixture(newFakeProfileRepo())
	ctx := context.Background()

	require.NoError(t, f.svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, f.svc.Unfollow(context.Background(), "alice", "bob"))

	following, err := f.svc.IsFollowing(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Len(t, f.notifications.notifications, 1, "unfollow must not notify")
}

func TestUnfollowMissingEdge(t *testing.T) {
	f := newFollowFixture(newFakeProfileRepo())
	err := f.svc.Unfollow(context.Background(), "alice", "bob")
	require.EqualError(t, err, "follow not found")
}

func TestFollowCounts(t *testing.T) {
	f := newFollowFixture(newFakeProfileRepo())
	ctx := context.Background()

	require.NoError(t, f.svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, f.svc.Follow(ctx, "carol", "bob"))
	require.NoError(t, f.svc.Follow(ctx, "bob", "alice"))

	counts, err := f.svc.Counts(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Followers)
	assert.Equal(t, int64(1), counts.Following)
}

func TestFollowersSkipProfilelessUsers(t *testing.T) {
	f := newFollowFixture(newFakeProfileRepo(&models.Profile{UserID: "carol", Name: "Carol"}))
	ctx := context.Background()

	require.NoError(t, f.svc.Follow(ctx, "carol", "bob"))
	require.NoError(t, f.svc.Follow(ctx, "ghost", "bob"))

	followers := f.svc.Followers(ctx, "bob")
	require.Len(t, followers, 1)
	assert.Equal(t, "carol", followers[0].UserID)
}
