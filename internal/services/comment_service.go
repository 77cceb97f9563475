package services

import (
	"context"
	"fmt"
	"log"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// CommentService owns the comment thread: creation with counter and fan-out
// side effects, tree assembly, and recursive deletion.
type CommentService struct {
	commentRepo     repositories.CommentRepository
	commentLikeRepo repositories.CommentLikeRepository
	postRepo        repositories.PostRepository
	profiles        *ProfileService
	notifier        *Notifier
}

// NewCommentService creates a CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	postRepo repositories.PostRepository,
	profiles *ProfileService,
	notifier *Notifier,
) *CommentService {
	return &CommentService{
		commentRepo:     commentRepo,
		commentLikeRepo: commentLikeRepo,
		postRepo:        postRepo,
		profiles:        profiles,
		notifier:        notifier,
	}
}

// CreateComment creates a top-level comment or, when ParentCommentID is set,
// a reply. A comment bumps the post's comments counter and notifies the post
// owner; a reply bumps the parent's replies counter and notifies the parent
// owner.
func (s *CommentService) CreateComment(ctx context.Context, comment *models.Comment) error {
	post, err := s.postRepo.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post not found")
	}

	var parent *models.Comment
	if comment.ParentCommentID != "" {
		parent, err = s.commentRepo.GetCommentByID(ctx, comment.ParentCommentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return fmt.Errorf("parent comment not found")
		}
	}

	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return err
	}

	if parent != nil {
		if err := s.commentRepo.IncrementRepliesCount(ctx, parent.ID.Hex(), 1); err != nil {
			log.Printf("CreateComment replies counter: %v", err)
		}
		s.notifier.Replied(ctx, parent.UserID, comment.UserID, comment.PostID)
	} else {
		if err := s.postRepo.IncrementCommentsCount(ctx, comment.PostID, 1); err != nil {
			log.Printf("CreateComment comments counter: %v", err)
		}
		s.notifier.Commented(ctx, post.UserID, comment.UserID, comment.PostID)
	}
	return nil
}

// CommentThread fetches a post's comments flat and reassembles the reply
// tree by grouping on parent id. The authoring UI only nests one level, but
// assembly recurses through whatever depth the stored parent links form.
// Soft-fails to an empty thread.
func (s *CommentService) CommentThread(ctx context.Context, postID string) []*models.CommentNode {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	comments, err := s.commentRepo.GetCommentsByPostID(rctx, postID)
	if err != nil {
		log.Printf("CommentThread %s: %v", postID, err)
		return []*models.CommentNode{}
	}

	authorIDs := make([]string, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.UserID)
	}
	snippets := s.profiles.SnippetMap(ctx, authorIDs, 0)

	byParent := make(map[string][]*models.CommentNode)
	for _, comment := range comments {
		node := &models.CommentNode{
			CommentWithProfile: models.CommentWithProfile{
				Comment: comment,
				Profile: snippets[comment.UserID],
			},
		}
		byParent[comment.ParentCommentID] = append(byParent[comment.ParentCommentID], node)
	}

	var attach func(nodes []*models.CommentNode)
	attach = func(nodes []*models.CommentNode) {
		for _, node := range nodes {
			node.Replies = byParent[node.ID.Hex()]
			attach(node.Replies)
		}
	}
	roots := byParent[""]
	attach(roots)
	if roots == nil {
		roots = []*models.CommentNode{}
	}
	return roots
}

// DeleteComment deletes a comment and its entire reply subtree, likes
// included. The walk is an explicit worklist so stack depth stays constant
// no matter how deep the stored parent chains go: for each id, delete its
// like rows, delete the document, then push its direct replies. The parent
// graph is a forest (parent ids are set once at creation), so no cycle
// check is needed. The deleted root also releases its slot in the post or
// parent counter.
func (s *CommentService) DeleteComment(ctx context.Context, commentID string) error {
	root, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if root == nil {
		return fmt.Errorf("comment not found")
	}

	worklist := []string{commentID}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if err := s.commentLikeRepo.DeleteLikesByCommentID(ctx, id); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteComment(ctx, id); err != nil {
			return err
		}

		children, err := s.commentRepo.GetCommentsByParentID(ctx, id)
		if err != nil {
			return err
		}
		for _, child := range children {
			worklist = append(worklist, child.ID.Hex())
		}
	}

	if root.ParentCommentID != "" {
		if err := s.commentRepo.IncrementRepliesCount(ctx, root.ParentCommentID, -1); err != nil {
			log.Printf("DeleteComment replies counter: %v", err)
		}
	} else {
		if err := s.postRepo.IncrementCommentsCount(ctx, root.PostID, -1); err != nil {
			log.Printf("DeleteComment comments counter: %v", err)
		}
	}
	return nil
}

// LikeComment records a like on a comment. The existence check and insert
// are two steps; the unique index on (comment_id, user_id) is the real
// duplicate guard. The likes counter moves by atomic increment and the
// comment owner is notified.
func (s *CommentService) LikeComment(ctx context.Context, commentID, userID string) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return fmt.Errorf("comment not found")
	}

	liked, err := s.commentLikeRepo.HasUserLikedComment(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if liked {
		return fmt.Errorf("comment already liked")
	}

	if err := s.commentLikeRepo.CreateLike(ctx, &models.CommentLike{CommentID: commentID, UserID: userID}); err != nil {
		return err
	}
	if err := s.commentRepo.IncrementLikesCount(ctx, commentID, 1); err != nil {
		log.Printf("LikeComment counter: %v", err)
	}

	s.notifier.CommentLiked(ctx, comment.UserID, userID, comment.PostID)
	return nil
}

// UnlikeComment removes a like and decrements the counter. Removing a like
// that does not exist is a no-op, matching the store-side behavior.
func (s *CommentService) UnlikeComment(ctx context.Context, commentID, userID string) error {
	if err := s.commentLikeRepo.DeleteLike(ctx, commentID, userID); err != nil {
		if err.Error() == "like not found" {
			return nil
		}
		return err
	}
	if err := s.commentRepo.IncrementLikesCount(ctx, commentID, -1); err != nil {
		log.Printf("UnlikeComment counter: %v", err)
	}
	return nil
}

// HasLiked reports whether userID has liked commentID
func (s *CommentService) HasLiked(ctx context.Context, commentID, userID string) (bool, error) {
	return s.commentLikeRepo.HasUserLikedComment(ctx, commentID, userID)
}
