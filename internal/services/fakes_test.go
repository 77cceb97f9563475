package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/campuslink/backend/internal/cache"
	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Each mirrors the not-found and sentinel-error
// behavior of the real implementation so services exercise the same paths.

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	getCalls int
	listErr  error
}

func newFakeProfileRepo(profiles ...*models.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
	for _, p := range profiles {
		r.add(p)
	}
	return r
}

func (r *fakeProfileRepo) add(p *models.Profile) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.profiles[p.UserID] = p
}

func (r *fakeProfileRepo) CreateProfile(_ context.Context, profile *models.Profile) error {
	if _, exists := r.profiles[profile.UserID]; exists {
		return fmt.Errorf("profile already exists")
	}
	r.add(profile)
	return nil
}

func (r *fakeProfileRepo) GetProfileByUserID(_ context.Context, userID string) (*models.Profile, error) {
	r.getCalls++
	return r.profiles[userID], nil
}

func (r *fakeProfileRepo) UpdateProfile(_ context.Context, id string, set bson.M) error {
	for _, p := range r.profiles {
		if p.ID.Hex() == id {
			if name, ok := set["name"].(string); ok {
				p.Name = name
			}
			if bio, ok := set["bio"].(string); ok {
				p.Bio = bio
			}
			return nil
		}
	}
	return fmt.Errorf("profile not found")
}

func (r *fakeProfileRepo) ListProfiles(_ context.Context, filter repositories.ProfileFilter, limit int64) ([]models.Profile, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Profile
	for _, p := range r.profiles {
		if filter.ExcludeUserID != "" && p.UserID == filter.ExcludeUserID {
			continue
		}
		if filter.CompletedOnly && !p.ProfileCompleted {
			continue
		}
		if filter.SkillLevel != "" && p.SkillLevel != filter.SkillLevel {
			continue
		}
		if filter.Interest != "" && !contains(p.Interests, filter.Interest) {
			continue
		}
		if len(filter.AnyInterests) > 0 {
			shared := false
			for _, want := range filter.AnyInterests {
				if contains(p.Interests, want) {
					shared = true
					break
				}
			}
			if !shared {
				continue
			}
		}
		out = append(out, *p)
	}
	// Deterministic but deliberately not id-ordered, so ranking tests
	// cannot lean on store order.
	sort.Slice(out, func(i, j int) bool { return out[i].UserID > out[j].UserID })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

type fakePostRepo struct {
	posts map[string]*models.Post
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[string]*models.Post)}
	for _, p := range posts {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.posts[p.ID.Hex()] = p
	}
	return r
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.LikesCount = 0
	post.CommentsCount = 0
	post.CreatedAt = time.Now()
	r.posts[post.ID.Hex()] = post
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	return r.posts[id], nil
}

func (r *fakePostRepo) GetPostsByUserID(_ context.Context, userID string, limit int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) GetAllPosts(_ context.Context, limit int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range r.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("post not found")
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) IncrementLikesCount(_ context.Context, postID string, delta int) error {
	post, ok := r.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	post.LikesCount += delta
	return nil
}

func (r *fakePostRepo) IncrementCommentsCount(_ context.Context, postID string, delta int) error {
	post, ok := r.posts[postID]
	if !ok {
		return fmt.Errorf("post not found")
	}
	post.CommentsCount += delta
	return nil
}

type fakeCommentRepo struct {
	comments map[string]*models.Comment
}

func newFakeCommentRepo(comments ...*models.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{comments: make(map[string]*models.Comment)}
	for _, c := range comments {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.comments[c.ID.Hex()] = c
	}
	return r
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.LikesCount = 0
	comment.RepliesCount = 0
	comment.CreatedAt = time.Now()
	r.comments[comment.ID.Hex()] = comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	return r.comments[id], nil
}

func (r *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) GetCommentsByParentID(_ context.Context, parentID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.ParentCommentID == parentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteComment(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return fmt.Errorf("comment not found")
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) IncrementLikesCount(_ context.Context, commentID string, delta int) error {
	comment, ok := r.comments[commentID]
	if !ok {
		return fmt.Errorf("comment not found")
	}
	comment.LikesCount += delta
	return nil
}

func (r *fakeCommentRepo) IncrementRepliesCount(_ context.Context, commentID string, delta int) error {
	comment, ok := r.comments[commentID]
	if !ok {
		return fmt.Errorf("comment not found")
	}
	comment.RepliesCount += delta
	return nil
}

type fakePostLikeRepo struct {
	likes map[string]bool // postID|userID
}

func newFakePostLikeRepo() *fakePostLikeRepo {
	return &fakePostLikeRepo{likes: make(map[string]bool)}
}

func (r *fakePostLikeRepo) CreateLike(_ context.Context, like *models.PostLike) error {
	key := like.PostID + "|" + like.UserID
	if r.likes[key] {
		return fmt.Errorf("duplicated key not allowed")
	}
	r.likes[key] = true
	return nil
}

func (r *fakePostLikeRepo) DeleteLike(_ context.Context, postID, userID string) error {
	key := postID + "|" + userID
	if !r.likes[key] {
		return fmt.Errorf("like not found")
	}
	delete(r.likes, key)
	return nil
}

func (r *fakePostLikeRepo) HasUserLikedPost(_ context.Context, postID, userID string) (bool, error) {
	return r.likes[postID+"|"+userID], nil
}

func (r *fakePostLikeRepo) DeleteLikesByPostID(_ context.Context, postID string) error {
	for key := range r.likes {
		if len(key) > len(postID) && key[:len(postID)+1] == postID+"|" {
			delete(r.likes, key)
		}
	}
	return nil
}

type fakeCommentLikeRepo struct {
	likes map[string]bool // commentID|userID
}

func newFakeCommentLikeRepo() *fakeCommentLikeRepo {
	return &fakeCommentLikeRepo{likes: make(map[string]bool)}
}

func (r *fakeCommentLikeRepo) CreateLike(_ context.Context, like *models.CommentLike) error {
	key := like.CommentID + "|" + like.UserID
	if r.likes[key] {
		return fmt.Errorf("duplicated key not allowed")
	}
	r.likes[key] = true
	return nil
}

func (r *fakeCommentLikeRepo) DeleteLike(_ context.Context, commentID, userID string) error {
	key := commentID + "|" + userID
	if !r.likes[key] {
		return fmt.Errorf("like not found")
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeCommentLikeRepo) HasUserLikedComment(_ context.Context, commentID, userID string) (bool, error) {
	return r.likes[commentID+"|"+userID], nil
}

func (r *fakeCommentLikeRepo) DeleteLikesByCommentID(_ context.Context, commentID string) error {
	for key := range r.likes {
		if len(key) > len(commentID) && key[:len(commentID)+1] == commentID+"|" {
			delete(r.likes, key)
		}
	}
	return nil
}

type fakeFollowRepo struct {
	edges        map[string]bool // followerID|followingID
	followingErr error
	followingCtx context.Context // last ctx seen by GetFollowingIDs
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[string]bool)}
}

func (r *fakeFollowRepo) CreateFollow(_ context.Context, follow *models.Follow) error {
	key := follow.FollowerID + "|" + follow.FollowingID
	if r.edges[key] {
		return fmt.Errorf("duplicated key not allowed")
	}
	r.edges[key] = true
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(_ context.Context, followerID, followingID string) error {
	key := followerID + "|" + followingID
	if !r.edges[key] {
		return fmt.Errorf("follow not found")
	}
	delete(r.edges, key)
	return nil
}

func (r *fakeFollowRepo) IsFollowing(_ context.Context, followerID, followingID string) (bool, error) {
	return r.edges[followerID+"|"+followingID], nil
}

func (r *fakeFollowRepo) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	r.followingCtx = ctx
	if r.followingErr != nil {
		return nil, r.followingErr
	}
	var out []string
	for key := range r.edges {
		if len(key) > len(followerID) && key[:len(followerID)+1] == followerID+"|" {
			out = append(out, key[len(followerID)+1:])
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeFollowRepo) GetFollowerIDs(_ context.Context, followingID string) ([]string, error) {
	var out []string
	for key := range r.edges {
		if len(key) > len(followingID) && key[len(key)-len(followingID)-1:] == "|"+followingID {
			out = append(out, key[:len(key)-len(followingID)-1])
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeFollowRepo) GetFollowCounts(ctx context.Context, userID string) (*models.FollowCounts, error) {
	followers, _ := r.GetFollowerIDs(ctx, userID)
	following, _ := r.GetFollowingIDs(ctx, userID)
	return &models.FollowCounts{
		Followers: int64(len(followers)),
		Following: int64(len(following)),
	}, nil
}

type fakeGroupRepo struct {
	groups map[string]*models.Group
}

func newFakeGroupRepo(groups ...*models.Group) *fakeGroupRepo {
	r := &fakeGroupRepo{groups: make(map[string]*models.Group)}
	for _, g := range groups {
		if g.ID.IsZero() {
			g.ID = primitive.NewObjectID()
		}
		r.groups[g.ID.Hex()] = g
	}
	return r
}

func (r *fakeGroupRepo) CreateGroup(_ context.Context, group *models.Group) error {
	group.ID = primitive.NewObjectID()
	group.MemberCount = 1
	group.CreatedAt = time.Now()
	r.groups[group.ID.Hex()] = group
	return nil
}

func (r *fakeGroupRepo) GetGroupByID(_ context.Context, id string) (*models.Group, error) {
	return r.groups[id], nil
}

func (r *fakeGroupRepo) ListGroups(_ context.Context, filter repositories.GroupFilter, limit int64) ([]models.Group, error) {
	var out []models.Group
	for _, g := range r.groups {
		if len(filter.Interests) > 0 && !contains(filter.Interests, g.Interest) {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberCount > out[j].MemberCount })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeGroupRepo) IncrementMemberCount(_ context.Context, groupID string, delta int) error {
	group, ok := r.groups[groupID]
	if !ok {
		return fmt.Errorf("group not found")
	}
	group.MemberCount += delta
	return nil
}

type fakeGroupMemberRepo struct {
	members map[string]*models.GroupMember // groupID|userID
}

func newFakeGroupMemberRepo() *fakeGroupMemberRepo {
	return &fakeGroupMemberRepo{members: make(map[string]*models.GroupMember)}
}

func (r *fakeGroupMemberRepo) CreateMember(_ context.Context, member *models.GroupMember) error {
	key := member.GroupID + "|" + member.UserID
	if _, exists := r.members[key]; exists {
		return fmt.Errorf("duplicated key not allowed")
	}
	member.JoinedAt = time.Now()
	r.members[key] = member
	return nil
}

func (r *fakeGroupMemberRepo) GetMember(_ context.Context, groupID, userID string) (*models.GroupMember, error) {
	return r.members[groupID+"|"+userID], nil
}

func (r *fakeGroupMemberRepo) GetMembersByGroupID(_ context.Context, groupID, status string) ([]models.GroupMember, error) {
	var out []models.GroupMember
	for _, m := range r.members {
		if m.GroupID == groupID && (status == "" || m.Status == status) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeGroupMemberRepo) GetGroupIDsByUserID(_ context.Context, userID, status string) ([]string, error) {
	var out []string
	for _, m := range r.members {
		if m.UserID == userID && (status == "" || m.Status == status) {
			out = append(out, m.GroupID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeGroupMemberRepo) UpdateStatus(_ context.Context, groupID, userID, status string) error {
	member, ok := r.members[groupID+"|"+userID]
	if !ok {
		return fmt.Errorf("membership not found")
	}
	member.Status = status
	return nil
}

func (r *fakeGroupMemberRepo) DeleteMember(_ context.Context, groupID, userID string) error {
	key := groupID + "|" + userID
	if _, ok := r.members[key]; !ok {
		return fmt.Errorf("membership not found")
	}
	delete(r.members, key)
	return nil
}

func (r *fakeGroupMemberRepo) IsApprovedMember(_ context.Context, groupID, userID string) (bool, error) {
	member := r.members[groupID+"|"+userID]
	return member != nil && member.Status == models.MemberStatusApproved, nil
}

type fakeDirectMessageRepo struct {
	messages []*models.DirectMessage
}

func newFakeDirectMessageRepo(messages ...*models.DirectMessage) *fakeDirectMessageRepo {
	r := &fakeDirectMessageRepo{}
	for _, m := range messages {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.messages = append(r.messages, m)
	}
	return r
}

func (r *fakeDirectMessageRepo) CreateMessage(_ context.Context, msg *models.DirectMessage) error {
	msg.ID = primitive.NewObjectID()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeDirectMessageRepo) GetMessagesBetween(_ context.Context, userID, otherUserID string) ([]models.DirectMessage, error) {
	var out []models.DirectMessage
	for _, m := range r.messages {
		if (m.SenderID == userID && m.ReceiverID == otherUserID) ||
			(m.SenderID == otherUserID && m.ReceiverID == userID) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeDirectMessageRepo) GetMessagesBySender(_ context.Context, senderID string) ([]models.DirectMessage, error) {
	var out []models.DirectMessage
	for _, m := range r.messages {
		if m.SenderID == senderID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeDirectMessageRepo) GetMessagesByReceiver(_ context.Context, receiverID string) ([]models.DirectMessage, error) {
	var out []models.DirectMessage
	for _, m := range r.messages {
		if m.ReceiverID == receiverID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeDirectMessageRepo) MarkMessagesAsRead(_ context.Context, senderID, receiverID string) error {
	for _, m := range r.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			m.Read = true
		}
	}
	return nil
}

type fakeGroupMessageRepo struct {
	messages []*models.GroupMessage
}

func newFakeGroupMessageRepo(messages ...*models.GroupMessage) *fakeGroupMessageRepo {
	r := &fakeGroupMessageRepo{}
	for _, m := range messages {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.messages = append(r.messages, m)
	}
	return r
}

func (r *fakeGroupMessageRepo) CreateMessage(_ context.Context, msg *models.GroupMessage) error {
	msg.ID = primitive.NewObjectID()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeGroupMessageRepo) GetMessagesByGroupID(_ context.Context, groupID string) ([]models.GroupMessage, error) {
	var out []models.GroupMessage
	for _, m := range r.messages {
		if m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeGroupMessageRepo) GetLastMessage(_ context.Context, groupID string) (*models.GroupMessage, error) {
	var last *models.GroupMessage
	for _, m := range r.messages {
		if m.GroupID != groupID {
			continue
		}
		if last == nil || m.CreatedAt.After(last.CreatedAt) {
			last = m
		}
	}
	return last, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, notification *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	notification.ID = primitive.NewObjectID()
	notification.Read = false
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) GetByUserID(_ context.Context, userID string, limit int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, notificationID string) error {
	for _, n := range r.notifications {
		if n.ID.Hex() == notificationID {
			n.Read = true
			return nil
		}
	}
	return fmt.Errorf("notification not found")
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

// newTestProfileService wires a ProfileService over a fake repo with a
// fresh cache.
func newTestProfileService(repo *fakeProfileRepo) *ProfileService {
	return NewProfileService(repo, cache.NewProfileCache(cache.DefaultProfileTTL, nil))
}
