package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/social"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/logging"
)

// Service errors
var (
	ErrNotFound    = errors.New("record not found")
	ErrNotOwner    = errors.New("not the owner")
	ErrInvalidType = errors.New("invalid post type")
)

// Service implements posts and comments: creation, detail rendering
// and the comment reply tree.
type Service struct {
	posts    *db.PostRepository
	comments *db.CommentRepository
	notifier *social.Notifier
	logger   *zap.Logger
}

// NewService creates a new content service
func NewService(repo *db.Repository, notifier *social.Notifier) *Service {
	return &Service{
		posts:    db.NewPostRepository(repo),
		comments: db.NewCommentRepository(repo),
		notifier: notifier,
		logger:   logging.WithComponent("content-service"),
	}
}

// CreatePostInput carries the fields of a new post
type CreatePostInput struct {
	AuthorID  int64
	Type      string
	Mode      string
	Title     string
	Content   string
	VideoName string
	Address   string
	Sports    string
	Topic     string
	ImageURLs []string
}

// CreatePost stores a new post with its ordered images. Video posts
// get a fresh storage key derived from the uploaded file name.
func (s *Service) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	switch in.Type {
	case models.PostTypeText, models.PostTypeImage, models.PostTypeVideo:
	default:
		return nil, ErrInvalidType
	}

	post := &models.Post{
		AuthorID:  in.AuthorID,
		Type:      in.Type,
		Mode:      in.Mode,
		Title:     in.Title,
		Content:   in.Content,
		Address:   in.Address,
		Sports:    in.Sports,
		Topic:     in.Topic,
		CreatedAt: time.Now().UTC(),
	}
	if in.Type == models.PostTypeVideo && in.VideoName != "" {
		post.Video = sql.NullString{String: VideoStorageKey(in.VideoName), Valid: true}
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	if len(in.ImageURLs) > 0 {
		images := make([]models.PostImage, 0, len(in.ImageURLs))
		for i, url := range in.ImageURLs {
			images = append(images, models.PostImage{PostID: post.ID, URL: url, Order: i})
		}
		if err := s.posts.AddImages(ctx, images); err != nil {
			return nil, err
		}
		post.Images = images
	}

	s.logger.Info("post created",
		zap.Int64("post_id", post.ID),
		zap.Int64("author_id", post.AuthorID),
		zap.String("type", post.Type))
	return post, nil
}

// VideoStorageKey derives a collision-free storage key for an
// uploaded video, keeping the original extension.
func VideoStorageKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("videos/%s%s", uuid.NewString(), ext)
}

// PostDetails is a post rendered with its counts for display
type PostDetails struct {
	Post         *models.Post `json:"post"`
	CommentCount int64        `json:"comment_count"`
}

// GetPost retrieves a post with author, ordered images and counts
func (s *Service) GetPost(ctx context.Context, id int64) (*PostDetails, error) {
	post, err := s.posts.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	counts, err := s.posts.CommentCounts(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return &PostDetails{Post: post, CommentCount: counts[id]}, nil
}

// CreateComment adds a comment to a post, optionally replying to a
// parent comment on the same post.
func (s *Service) CreateComment(ctx context.Context, postID, authorID int64, parentID *int64, text string) (*models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != postID {
			return nil, ErrNotFound
		}
		comment.ParentID = sql.NullInt64{Int64: *parentID, Valid: true}
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if comment.ParentID.Valid {
		s.notifier.Replied(ctx, comment.ParentID.Int64, authorID)
	} else {
		s.notifier.Commented(ctx, postID, authorID)
	}
	return comment, nil
}

// CommentNode is a comment with its reply subtree expanded
type CommentNode struct {
	Comment *models.Comment `json:"comment"`
	Replies []*CommentNode  `json:"replies"`
}

// CommentTree returns a post's top-level comments newest first, each
// with its reply tree. The tree is assembled in memory from one
// fetch of the post's comments.
func (s *Service) CommentTree(ctx context.Context, postID int64) ([]*CommentNode, error) {
	all, err := s.comments.AllByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	children := make(map[int64][]*models.Comment)
	var roots []*models.Comment
	for _, c := range all {
		if c.ParentID.Valid {
			children[c.ParentID.Int64] = append(children[c.ParentID.Int64], c)
		} else {
			roots = append(roots, c)
		}
	}

	var build func(c *models.Comment) *CommentNode
	build = func(c *models.Comment) *CommentNode {
		node := &CommentNode{Comment: c}
		// reverse to oldest-first within a reply thread
		kids := children[c.ID]
		for i := len(kids) - 1; i >= 0; i-- {
			node.Replies = append(node.Replies, build(kids[i]))
		}
		return node
	}

	nodes := make([]*CommentNode, 0, len(roots))
	for _, c := range roots {
		nodes = append(nodes, build(c))
	}
	return nodes, nil
}

// UpdateComment changes the text of the caller's own comment
func (s *Service) UpdateComment(ctx context.Context, commentID, userID int64, text string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.AuthorID != userID {
		return nil, ErrNotOwner
	}
	comment.Content = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the caller's own comment and its likes
func (s *Service) DeleteComment(ctx context.Context, commentID, userID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if comment.AuthorID != userID {
		return ErrNotOwner
	}
	return s.comments.Delete(ctx, commentID)
}
