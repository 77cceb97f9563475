package services

import (
	"context"
	"log"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// MessageService owns direct and group messaging.
type MessageService struct {
	directMessageRepo repositories.DirectMessageRepository
	groupMessageRepo  repositories.GroupMessageRepository
	profiles          *ProfileService
	notifier          *Notifier
}

// NewMessageService creates a MessageService
func NewMessageService(
	directMessageRepo repositories.DirectMessageRepository,
	groupMessageRepo repositories.GroupMessageRepository,
	profiles *ProfileService,
	notifier *Notifier,
) *MessageService {
	return &MessageService{
		directMessageRepo: directMessageRepo,
		groupMessageRepo:  groupMessageRepo,
		profiles:          profiles,
		notifier:          notifier,
	}
}

// SendDirectMessage appends a message and notifies the receiver
func (s *MessageService) SendDirectMessage(ctx context.Context, msg *models.DirectMessage) error {
	if err := s.directMessageRepo.CreateMessage(ctx, msg); err != nil {
		return err
	}
	s.notifier.Messaged(ctx, msg.ReceiverID, msg.SenderID)
	return nil
}

// DirectMessageHistory returns the full thread between two users, oldest
// first, and marks the other side's messages as read. Soft-fails to empty.
func (s *MessageService) DirectMessageHistory(ctx context.Context, userID, otherUserID string) []models.DirectMessage {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	messages, err := s.directMessageRepo.GetMessagesBetween(rctx, userID, otherUserID)
	if err != nil {
		log.Printf("DirectMessageHistory: %v", err)
		return []models.DirectMessage{}
	}

	if err := s.directMessageRepo.MarkMessagesAsRead(ctx, otherUserID, userID); err != nil {
		log.Printf("DirectMessageHistory mark read: %v", err)
	}
	return messages
}

// SendGroupMessage appends a message to a group room. No notification
// fan-out: group rooms rely on the live subscription instead.
func (s *MessageService) SendGroupMessage(ctx context.Context, msg *models.GroupMessage) error {
	return s.groupMessageRepo.CreateMessage(ctx, msg)
}

// GroupMessageHistory returns a group's messages joined with sender
// snippets, oldest first. Soft-fails to empty.
func (s *MessageService) GroupMessageHistory(ctx context.Context, groupID string) []models.GroupMessageWithProfile {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	messages, err := s.groupMessageRepo.GetMessagesByGroupID(rctx, groupID)
	if err != nil {
		log.Printf("GroupMessageHistory %s: %v", groupID, err)
		return []models.GroupMessageWithProfile{}
	}

	senderIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		senderIDs = append(senderIDs, msg.UserID)
	}
	snippets := s.profiles.SnippetMap(ctx, senderIDs, 0)

	joined := make([]models.GroupMessageWithProfile, 0, len(messages))
	for _, msg := range messages {
		joined = append(joined, models.GroupMessageWithProfile{GroupMessage: msg, Profile: snippets[msg.UserID]})
	}
	return joined
}
