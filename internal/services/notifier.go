package services

import (
	"context"
	"log"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// Notifier fans a social action out to the recipient's notification inbox.
// Fan-out is best-effort: every failure is logged and swallowed so the
// primary action (like, comment, follow, message) never fails or rolls back
// because of notification delivery. A crash between the primary write and
// the notification write drops the notification; there is no retry or outbox.
type Notifier struct {
	notificationRepo repositories.NotificationRepository
	profiles         *ProfileService
}

// NewNotifier creates a Notifier
func NewNotifier(notificationRepo repositories.NotificationRepository, profiles *ProfileService) *Notifier {
	return &Notifier{notificationRepo: notificationRepo, profiles: profiles}
}

// actorName resolves the display name used in notification copy
func (n *Notifier) actorName(ctx context.Context, actorID string) string {
	if profile := n.profiles.GetProfile(ctx, actorID); profile != nil {
		return profile.Name
	}
	return "Someone"
}

// notify writes one notification, skipping self-notification
func (n *Notifier) notify(ctx context.Context, recipientID, actorID, notifType, content, link string) {
	if recipientID == actorID || recipientID == "" {
		return
	}
	notification := &models.Notification{
		UserID:     recipientID,
		FromUserID: actorID,
		Type:       notifType,
		Content:    content,
		Link:       link,
	}
	if err := n.notificationRepo.CreateNotification(ctx, notification); err != nil {
		log.Printf("Failed to create %s notification: %v", notifType, err)
	}
}

// PostLiked notifies the post owner that actorID liked their post
func (n *Notifier) PostLiked(ctx context.Context, postOwnerID, actorID, postID string) {
	n.notify(ctx, postOwnerID, actorID, models.NotificationTypeLike,
		n.actorName(ctx, actorID)+" liked your post", "/post/"+postID)
}

// CommentLiked notifies the comment owner that actorID liked their comment
func (n *Notifier) CommentLiked(ctx context.Context, commentOwnerID, actorID, postID string) {
	n.notify(ctx, commentOwnerID, actorID, models.NotificationTypeCommentLike,
		n.actorName(ctx, actorID)+" liked your comment", "/post/"+postID)
}

// Commented notifies the post owner that actorID commented on their post
func (n *Notifier) Commented(ctx context.Context, postOwnerID, actorID, postID string) {
	n.notify(ctx, postOwnerID, actorID, models.NotificationTypeComment,
		n.actorName(ctx, actorID)+" commented on your post", "/post/"+postID)
}

// Replied notifies the parent-comment owner that actorID replied to them
func (n *Notifier) Replied(ctx context.Context, parentOwnerID, actorID, postID string) {
	n.notify(ctx, parentOwnerID, actorID, models.NotificationTypeReply,
		n.actorName(ctx, actorID)+" replied to your comment", "/post/"+postID)
}

// Followed notifies a user that actorID started following them
func (n *Notifier) Followed(ctx context.Context, followedID, actorID string) {
	n.notify(ctx, followedID, actorID, models.NotificationTypeFollow,
		n.actorName(ctx, actorID)+" started following you", "/user/"+actorID)
}

// Messaged notifies a user that actorID sent them a direct message
func (n *Notifier) Messaged(ctx context.Context, receiverID, actorID string) {
	n.notify(ctx, receiverID, actorID, models.NotificationTypeMessage,
		n.actorName(ctx, actorID)+" sent you a message", "/messages/"+actorID)
}
