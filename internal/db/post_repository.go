package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
)

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetWithDetails retrieves a post with author and ordered images
func (r *PostRepository) GetWithDetails(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("ord ASC")
		}).
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// AddImages attaches ordered images to a post
func (r *PostRepository) AddImages(ctx context.Context, images []models.PostImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// VideoCandidates retrieves all video posts excluding the given ids,
// with author preloaded. One query for the whole candidate set.
func (r *PostRepository) VideoCandidates(ctx context.Context, excludeIDs []int64) ([]*models.Post, error) {
	q := r.db.WithContext(ctx).
		Preload("Author").
		Where("type = ?", models.PostTypeVideo)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var posts []*models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FirstVideos retrieves the first video posts by id ascending
func (r *PostRepository) FirstVideos(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("type = ?", models.PostTypeVideo).
		Order("id ASC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// VideosByAuthor retrieves an author's video posts newest first
func (r *PostRepository) VideosByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND type = ?", authorID, models.PostTypeVideo).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchVideos retrieves video posts matching the query over title,
// content, topic and sports, case-insensitive, newest first.
func (r *PostRepository) SearchVideos(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	pattern := "%" + query + "%"
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("type = ?", models.PostTypeVideo).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?) OR LOWER(topic) LIKE LOWER(?) OR LOWER(sports) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CommentCounts returns the comment count per post id, one grouped
// query for the whole set.
func (r *PostRepository) CommentCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type row struct {
		PostID int64
		N      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.PostID] = rw.N
	}
	return counts, nil
}
