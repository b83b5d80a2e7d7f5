package social

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/logging"
)

// Service errors
var (
	ErrSelfFollow = errors.New("cannot follow self")
	ErrSelfBlock  = errors.New("cannot block self")
	ErrNotFound   = errors.New("record not found")
)

// Service implements the social-graph mutations: follow/unfollow,
// block/unblock and likes. Creates are idempotent (a repeat returns
// the existing edge), deletes are no-op successes when nothing is
// there. The store's unique pair indexes, not the existence checks
// here, are what hold the uniqueness invariant under concurrency.
type Service struct {
	follows  *db.FollowRepository
	blocks   *db.BlockRepository
	posts    *db.PostRepository
	comments *db.CommentRepository
	likes    *db.LikeRepository
	notifier *Notifier
	logger   *zap.Logger
}

// NewService creates a new social service
func NewService(repo *db.Repository, notifier *Notifier) *Service {
	return &Service{
		follows:  db.NewFollowRepository(repo),
		blocks:   db.NewBlockRepository(repo),
		posts:    db.NewPostRepository(repo),
		comments: db.NewCommentRepository(repo),
		likes:    db.NewLikeRepository(repo),
		notifier: notifier,
		logger:   logging.WithComponent("social-service"),
	}
}

// Follow creates the follower->following edge. A repeat follow
// returns the existing edge without creating a duplicate.
func (s *Service) Follow(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	existing, err := s.follows.Get(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	follow, err := s.follows.Create(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}

	s.notifier.Followed(ctx, followingID, followerID)
	return follow, nil
}

// Unfollow removes the edge; absent edges succeed as a no-op
func (s *Service) Unfollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	return s.follows.Delete(ctx, followerID, followingID)
}

// BlockUser creates the user->blocked suppression edge, idempotently
func (s *Service) BlockUser(ctx context.Context, userID, blockedID int64) (*models.Block, error) {
	if userID == blockedID {
		return nil, ErrSelfBlock
	}

	existing, err := s.blocks.Get(ctx, userID, blockedID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return s.blocks.Create(ctx, userID, blockedID)
}

// UnblockUser removes the edge; absent edges succeed as a no-op
func (s *Service) UnblockUser(ctx context.Context, userID, blockedID int64) (bool, error) {
	return s.blocks.Delete(ctx, userID, blockedID)
}

// IsFollowing reports whether follower follows following
func (s *Service) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	edge, err := s.follows.Get(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	return edge != nil, nil
}

// IsBlocking reports whether user has blocked blocked
func (s *Service) IsBlocking(ctx context.Context, userID, blockedID int64) (bool, error) {
	edge, err := s.blocks.Get(ctx, userID, blockedID)
	if err != nil {
		return false, err
	}
	return edge != nil, nil
}

// BlockedUsers returns all ids the user has blocked
func (s *Service) BlockedUsers(ctx context.Context, userID int64) ([]int64, error) {
	return s.blocks.BlockedIDs(ctx, userID)
}

// LikePost likes a post for a user. The like row and the post's
// heart count move in one transaction; a repeat like returns the
// existing row.
func (s *Service) LikePost(ctx context.Context, postID, userID int64) (*models.PostLike, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	like, created, err := s.likes.LikePost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if created {
		s.notifier.PostLiked(ctx, postID, userID)
	}
	return like, nil
}

// UnlikePost removes a post like; liking nothing is a no-op success
func (s *Service) UnlikePost(ctx context.Context, postID, userID int64) (bool, error) {
	return s.likes.UnlikePost(ctx, postID, userID)
}

// IsPostLiked reports whether the user has liked the post
func (s *Service) IsPostLiked(ctx context.Context, postID, userID int64) (bool, error) {
	like, err := s.likes.GetPostLike(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	return like != nil, nil
}

// LikeComment likes a comment for a user, returning the like and the
// comment author's id so callers can attribute ownership.
func (s *Service) LikeComment(ctx context.Context, commentID, userID int64) (*models.CommentLike, int64, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, 0, err
	}
	if comment == nil {
		return nil, 0, ErrNotFound
	}

	like, created, err := s.likes.LikeComment(ctx, commentID, userID)
	if err != nil {
		return nil, 0, err
	}
	if created {
		s.notifier.CommentLiked(ctx, commentID, userID)
	}
	return like, comment.AuthorID, nil
}

// UnlikeComment removes a comment like; no-op success when absent
func (s *Service) UnlikeComment(ctx context.Context, commentID, userID int64) (bool, error) {
	return s.likes.UnlikeComment(ctx, commentID, userID)
}

// LikedComments returns ids of comments under the post the user has liked
func (s *Service) LikedComments(ctx context.Context, postID, userID int64) ([]int64, error) {
	return s.likes.LikedCommentIDs(ctx, postID, userID)
}

// RecountPostLikes reconciles a post's heart count from the like
// rows. Maintenance entry point, not part of the request path.
func (s *Service) RecountPostLikes(ctx context.Context, postID int64) (int64, error) {
	n, err := s.likes.RecountPostLikes(ctx, postID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("post like count reconciled",
		zap.Int64("post_id", postID), zap.Int64("count", n))
	return n, nil
}

// RecountCommentLikes reconciles a comment's like count
func (s *Service) RecountCommentLikes(ctx context.Context, commentID int64) (int64, error) {
	n, err := s.likes.RecountCommentLikes(ctx, commentID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("comment like count reconciled",
		zap.Int64("comment_id", commentID), zap.Int64("count", n))
	return n, nil
}
