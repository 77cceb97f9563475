package services

import (
	"context"
	"log"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// Notification pages are capped at the newest 50 entries.
const notificationPageSize = 50

// NotificationService owns the notification inbox read side. The write side
// is the Notifier fan-out.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Inbox returns a user's newest notifications, soft-failing to empty
func (s *NotificationService) Inbox(ctx context.Context, userID string) []models.Notification {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	notifications, err := s.notificationRepo.GetByUserID(rctx, userID, notificationPageSize)
	if err != nil {
		log.Printf("Inbox %s: %v", userID, err)
		return []models.Notification{}
	}
	return notifications
}

// UnreadCount returns the number of unread notifications, soft-failing to 0
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) int64 {
	sctx, cancel := shortReadCtx(ctx)
	defer cancel()

	count, err := s.notificationRepo.GetUnreadCount(sctx, userID)
	if err != nil {
		log.Printf("UnreadCount %s: %v", userID, err)
		return 0
	}
	return count
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.notificationRepo.MarkAsRead(ctx, notificationID)
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
