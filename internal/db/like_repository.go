package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
)

// LikeRepository provides like-related database operations. The like
// row and the denormalized counter always move inside one transaction.
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// GetPostLike retrieves a post like by pair, nil when absent
func (r *LikeRepository) GetPostLike(ctx context.Context, postID, userID int64) (*models.PostLike, error) {
	var like models.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// LikePost inserts the like row and increments the post's heart count
// in one transaction. Returns the like and whether it was created now;
// a repeat like returns the existing row untouched.
func (r *LikeRepository) LikePost(ctx context.Context, postID, userID int64) (*models.PostLike, bool, error) {
	like := &models.PostLike{PostID: postID, UserID: userID}
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already liked; leave the counter alone
			return tx.Where("post_id = ? AND user_id = ?", postID, userID).First(like).Error
		}
		created = true
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("heart_count", gorm.Expr("heart_count + 1")).Error
	})
	if err != nil {
		return nil, false, err
	}
	return like, created, nil
}

// UnlikePost deletes the like row and decrements the heart count in
// one transaction. Absent likes are a no-op success (false).
func (r *LikeRepository) UnlikePost(ctx context.Context, postID, userID int64) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&models.Post{}).
			Where("id = ? AND heart_count > 0", postID).
			UpdateColumn("heart_count", gorm.Expr("heart_count - 1")).Error
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// GetCommentLike retrieves a comment like by pair, nil when absent
func (r *LikeRepository) GetCommentLike(ctx context.Context, commentID, userID int64) (*models.CommentLike, error) {
	var like models.CommentLike
	if err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// LikeComment mirrors LikePost for comment likes
func (r *LikeRepository) LikeComment(ctx context.Context, commentID, userID int64) (*models.CommentLike, bool, error) {
	like := &models.CommentLike{CommentID: commentID, UserID: userID}
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(like).Error
		}
		created = true
		return tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return nil, false, err
	}
	return like, created, nil
}

// UnlikeComment mirrors UnlikePost for comment likes
func (r *LikeRepository) UnlikeComment(ctx context.Context, commentID, userID int64) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&models.Comment{}).
			Where("id = ? AND like_count > 0", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// LikedCommentIDs returns ids of comments under the post that the
// user has liked.
func (r *LikeRepository) LikedCommentIDs(ctx context.Context, postID, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Joins("JOIN comments ON comments.id = comment_likes.comment_id").
		Where("comment_likes.user_id = ? AND comments.post_id = ?", userID, postID).
		Pluck("comment_likes.comment_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// RecountPostLikes rewrites the post's heart count from the true row
// count. Explicit maintenance for counter drift, not part of the
// request path.
func (r *LikeRepository) RecountPostLikes(ctx context.Context, postID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostLike{}).
			Where("post_id = ?", postID).
			Count(&n).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("heart_count", n).Error
	})
	return n, err
}

// RecountCommentLikes mirrors RecountPostLikes for comments
func (r *LikeRepository) RecountCommentLikes(ctx context.Context, commentID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CommentLike{}).
			Where("comment_id = ?", commentID).
			Count(&n).Error; err != nil {
			return err
		}
		return tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", n).Error
	})
	return n, err
}
