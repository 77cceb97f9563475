package services

import (
	"context"
	"log"
	"sort"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// ConversationService builds the merged conversation list: direct-message
// partners folded from two one-sided queries, plus the user's group rooms.
type ConversationService struct {
	directMessageRepo repositories.DirectMessageRepository
	groupMessageRepo  repositories.GroupMessageRepository
	groupRepo         repositories.GroupRepository
	groupMemberRepo   repositories.GroupMemberRepository
	profiles          *ProfileService
}

// NewConversationService creates a ConversationService
func NewConversationService(
	directMessageRepo repositories.DirectMessageRepository,
	groupMessageRepo repositories.GroupMessageRepository,
	groupRepo repositories.GroupRepository,
	groupMemberRepo repositories.GroupMemberRepository,
	profiles *ProfileService,
) *ConversationService {
	return &ConversationService{
		directMessageRepo: directMessageRepo,
		groupMessageRepo:  groupMessageRepo,
		groupRepo:         groupRepo,
		groupMemberRepo:   groupMemberRepo,
		profiles:          profiles,
	}
}

// Conversations returns the user's conversation list sorted by last-message
// time descending. Each direct partner appears once, keyed by partner id;
// each group room appears once, keyed "group-<id>". Any failing source query
// contributes an empty set instead of an error, so the worst case is an
// empty list.
func (s *ConversationService) Conversations(ctx context.Context, userID string) []models.Conversation {
	byKey := make(map[string]*models.Conversation)

	s.foldDirectMessages(ctx, userID, byKey)
	s.appendGroupConversations(ctx, userID, byKey)

	conversations := make([]models.Conversation, 0, len(byKey))
	for _, conv := range byKey {
		conversations = append(conversations, *conv)
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})
	return conversations
}

// foldDirectMessages folds sent and received messages into one entry per
// partner. Two independent reduction rules apply: display fields (content,
// timestamp, unread-from-latest) follow the strictly newest message, while
// any unread incoming message forces the unread flag true even when it is
// not the latest.
func (s *ConversationService) foldDirectMessages(ctx context.Context, userID string, byKey map[string]*models.Conversation) {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	sent, err := s.directMessageRepo.GetMessagesBySender(rctx, userID)
	if err != nil {
		log.Printf("Conversations sent query: %v", err)
		sent = nil
	}
	received, err := s.directMessageRepo.GetMessagesByReceiver(rctx, userID)
	if err != nil {
		log.Printf("Conversations received query: %v", err)
		received = nil
	}

	fold := func(msg models.DirectMessage) {
		partnerID := msg.ReceiverID
		if msg.ReceiverID == userID {
			partnerID = msg.SenderID
		}
		unreadIncoming := msg.ReceiverID == userID && !msg.Read

		existing, ok := byKey[partnerID]
		if !ok {
			byKey[partnerID] = &models.Conversation{
				Key:           partnerID,
				UserID:        partnerID,
				LastMessage:   msg.Content,
				LastMessageAt: msg.CreatedAt,
				Unread:        unreadIncoming,
			}
			return
		}
		if msg.CreatedAt.After(existing.LastMessageAt) {
			wasUnread := existing.Unread
			existing.LastMessage = msg.Content
			existing.LastMessageAt = msg.CreatedAt
			existing.Unread = unreadIncoming || wasUnread
		} else if unreadIncoming {
			existing.Unread = true
		}
	}

	for _, msg := range sent {
		fold(msg)
	}
	for _, msg := range received {
		fold(msg)
	}

	for partnerID, conv := range byKey {
		profile := s.profiles.GetProfile(ctx, partnerID)
		if profile != nil {
			conv.Name = profile.Name
			conv.AvatarURL = profile.AvatarURL
		} else {
			conv.Name = "Unknown"
		}
	}
}

// appendGroupConversations adds one entry per approved group membership,
// keyed "group-<id>" so it never collides with a direct partner. The last
// message comes from the newest group message, falling back to a placeholder
// and the group's creation time for empty rooms.
func (s *ConversationService) appendGroupConversations(ctx context.Context, userID string, byKey map[string]*models.Conversation) {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	groupIDs, err := s.groupMemberRepo.GetGroupIDsByUserID(rctx, userID, models.MemberStatusApproved)
	if err != nil {
		log.Printf("Conversations membership query: %v", err)
		return
	}

	for _, groupID := range groupIDs {
		key := "group-" + groupID
		if _, exists := byKey[key]; exists {
			continue
		}

		group, err := s.groupRepo.GetGroupByID(rctx, groupID)
		if err != nil || group == nil {
			if err != nil {
				log.Printf("Conversations group %s: %v", groupID, err)
			}
			continue
		}

		conv := &models.Conversation{
			Key:           key,
			GroupID:       groupID,
			IsGroup:       true,
			Name:          group.Name,
			LastMessage:   "No messages yet",
			LastMessageAt: group.CreatedAt,
		}
		lastMsg, err := s.groupMessageRepo.GetLastMessage(rctx, groupID)
		if err != nil {
			log.Printf("Conversations group %s last message: %v", groupID, err)
		} else if lastMsg != nil {
			conv.LastMessage = lastMsg.Content
			conv.LastMessageAt = lastMsg.CreatedAt
		}
		byKey[key] = conv
	}
}
