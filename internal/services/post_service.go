package services

import (
	"context"
	"fmt"
	"log"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// Author snippets attached to a feed page are resolved for at most this
// many unique authors; posts beyond that render without a snippet.
const maxFeedProfileLookups = 10

// PostService owns the feed and post-like flows.
type PostService struct {
	postRepo     repositories.PostRepository
	postLikeRepo repositories.PostLikeRepository
	profiles     *ProfileService
	notifier     *Notifier
}

// NewPostService creates a PostService
func NewPostService(
	postRepo repositories.PostRepository,
	postLikeRepo repositories.PostLikeRepository,
	profiles *ProfileService,
	notifier *Notifier,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		postLikeRepo: postLikeRepo,
		profiles:     profiles,
		notifier:     notifier,
	}
}

// CreatePost creates a new post
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) error {
	return s.postRepo.CreatePost(ctx, post)
}

// Feed lists the newest posts joined with author snippets, filtered down to
// the viewer's interests. Untagged posts always pass the filters. Soft-fails
// to an empty feed.
func (s *PostService) Feed(ctx context.Context, interests, subInterests []string, limit int64) []models.PostWithProfile {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	posts, err := s.postRepo.GetAllPosts(rctx, limit)
	if err != nil {
		log.Printf("Feed: %v", err)
		return []models.PostWithProfile{}
	}

	if len(interests) > 0 {
		posts = filterByTag(posts, interests, func(p models.Post) string { return p.InterestCategory })
	}
	if len(subInterests) > 0 {
		posts = filterByTag(posts, subInterests, func(p models.Post) string { return p.SubInterest })
	}

	authorIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		authorIDs = append(authorIDs, post.UserID)
	}
	snippets := s.profiles.SnippetMap(ctx, authorIDs, maxFeedProfileLookups)

	joined := make([]models.PostWithProfile, 0, len(posts))
	for _, post := range posts {
		joined = append(joined, models.PostWithProfile{Post: post, Profile: snippets[post.UserID]})
	}
	return joined
}

// filterByTag keeps posts whose tag is empty or contained in allowed
func filterByTag(posts []models.Post, allowed []string, tagOf func(models.Post) string) []models.Post {
	kept := posts[:0]
	for _, post := range posts {
		tag := tagOf(post)
		if tag == "" {
			kept = append(kept, post)
			continue
		}
		for _, a := range allowed {
			if a == tag {
				kept = append(kept, post)
				break
			}
		}
	}
	return kept
}

// PostsByUser lists a user's own posts joined with their snippet
func (s *PostService) PostsByUser(ctx context.Context, userID string, limit int64) []models.PostWithProfile {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	posts, err := s.postRepo.GetPostsByUserID(rctx, userID, limit)
	if err != nil {
		log.Printf("PostsByUser %s: %v", userID, err)
		return []models.PostWithProfile{}
	}

	snippet := s.profiles.Snippet(ctx, userID)
	joined := make([]models.PostWithProfile, 0, len(posts))
	for _, post := range posts {
		joined = append(joined, models.PostWithProfile{Post: post, Profile: snippet})
	}
	return joined
}

// GetPost retrieves a single post; (nil, nil) when absent
func (s *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return s.postRepo.GetPostByID(ctx, postID)
}

// DeletePost removes a post and its like rows
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}
	if err := s.postLikeRepo.DeleteLikesByPostID(ctx, postID); err != nil {
		log.Printf("DeletePost like rows %s: %v", postID, err)
	}
	return nil
}

// LikePost records a like. The existence check before insert and the insert
// itself are two separate steps, so two concurrent likes from the same user
// can both pass the check; the unique index on (post_id, user_id) rejects
// the losing insert before that caller reaches its increment, so the counter
// still moves exactly once per like row. The counter moves by atomic
// increment so concurrent distinct likers never lose an update.
func (s *PostService) LikePost(ctx context.Context, postID, userID string) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post not found")
	}

	liked, err := s.postLikeRepo.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if liked {
		return fmt.Errorf("post already liked")
	}

	if err := s.postLikeRepo.CreateLike(ctx, &models.PostLike{PostID: postID, UserID: userID}); err != nil {
		return err
	}
	if err := s.postRepo.IncrementLikesCount(ctx, postID, 1); err != nil {
		log.Printf("LikePost counter: %v", err)
	}

	s.notifier.PostLiked(ctx, post.UserID, userID, postID)
	return nil
}

// UnlikePost removes a like and decrements the counter. A missing like row
// is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, postID, userID string) error {
	if err := s.postLikeRepo.DeleteLike(ctx, postID, userID); err != nil {
		if err.Error() == "like not found" {
			return nil
		}
		return err
	}
	if err := s.postRepo.IncrementLikesCount(ctx, postID, -1); err != nil {
		log.Printf("UnlikePost counter: %v", err)
	}
	return nil
}

// HasLiked reports whether userID has liked postID
func (s *PostService) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	return s.postLikeRepo.HasUserLikedPost(ctx, postID, userID)
}
