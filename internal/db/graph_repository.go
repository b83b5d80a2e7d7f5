package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
)

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// Get retrieves the follow edge for an ordered pair, nil when absent
func (r *FollowRepository) Get(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

// Create inserts the edge if absent and returns it. The unique pair
// index makes concurrent duplicate creates converge on one row.
func (r *FollowRepository) Create(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error; err != nil {
		return nil, err
	}
	if follow.ID != 0 {
		return follow, nil
	}
	// Conflict: the edge already existed, return it
	return r.Get(ctx, followerID, followingID)
}

// Delete removes the edge for an ordered pair, reporting whether a
// row was deleted.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FollowedAmong returns the subset of candidateIDs that followerID
// follows. One batched query, never one per candidate.
func (r *FollowRepository) FollowedAmong(ctx context.Context, followerID int64, candidateIDs []int64) (map[int64]struct{}, error) {
	result := make(map[int64]struct{})
	if len(candidateIDs) == 0 {
		return result, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

// FollowersAmong returns the subset of candidateIDs that follow
// followingID.
func (r *FollowRepository) FollowersAmong(ctx context.Context, followingID int64, candidateIDs []int64) (map[int64]struct{}, error) {
	result := make(map[int64]struct{})
	if len(candidateIDs) == 0 {
		return result, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ? AND follower_id IN ?", followingID, candidateIDs).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

// FollowingIDs returns ids of accounts the user follows
func (r *FollowRepository) FollowingIDs(ctx context.Context, userID int64, limit int) ([]int64, error) {
	var ids []int64
	q := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowerIDs returns ids of accounts following the user
func (r *FollowRepository) FollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CountFollowers counts accounts following the user
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&n).Error
	return n, err
}

// CountFollowing counts accounts the user follows
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&n).Error
	return n, err
}

// BlockRepository provides block-edge database operations
type BlockRepository struct {
	*Repository
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(repo *Repository) *BlockRepository {
	return &BlockRepository{Repository: repo}
}

// Get retrieves the block edge for an ordered pair, nil when absent
func (r *BlockRepository) Get(ctx context.Context, userID, blockedID int64) (*models.Block, error) {
	var block models.Block
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_id = ?", userID, blockedID).
		First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &block, nil
}

// Create inserts the block edge if absent and returns it
func (r *BlockRepository) Create(ctx context.Context, userID, blockedID int64) (*models.Block, error) {
	block := &models.Block{
		UserID:    userID,
		BlockedID: blockedID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(block).Error; err != nil {
		return nil, err
	}
	if block.ID != 0 {
		return block, nil
	}
	return r.Get(ctx, userID, blockedID)
}

// Delete removes the block edge, reporting whether a row was deleted
func (r *BlockRepository) Delete(ctx context.Context, userID, blockedID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_id = ?", userID, blockedID).
		Delete(&models.Block{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// BlockedAmong returns the subset of candidateIDs that userID has
// blocked. One batched query.
func (r *BlockRepository) BlockedAmong(ctx context.Context, userID int64, candidateIDs []int64) (map[int64]struct{}, error) {
	result := make(map[int64]struct{})
	if len(candidateIDs) == 0 {
		return result, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("user_id = ? AND blocked_id IN ?", userID, candidateIDs).
		Pluck("blocked_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

// BlockedIDs returns all ids blocked by the user
func (r *BlockRepository) BlockedIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("user_id = ?", userID).
		Pluck("blocked_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
