package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/cache"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/logging"
)

const (
	defaultLimit = 20
	maxLimit     = 100
	cacheTTL     = 30 * time.Second
)

// Service implements case-insensitive search over posts and users.
// Results are block-filtered for the viewer and cached briefly when
// a cache is configured; cache failures fall through to the store.
type Service struct {
	accounts *db.AccountRepository
	posts    *db.PostRepository
	blocks   *db.BlockRepository
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewService creates a new search service. cache may be nil.
func NewService(repo *db.Repository, c *cache.Cache) *Service {
	return &Service{
		accounts: db.NewAccountRepository(repo),
		posts:    db.NewPostRepository(repo),
		blocks:   db.NewBlockRepository(repo),
		cache:    c,
		logger:   logging.WithComponent("search-service"),
	}
}

// PostResult is a video post rendered for search results
type PostResult struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Video    string `json:"video,omitempty"`
	Topic    string `json:"topic"`
	Sports   string `json:"sports"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// Posts searches video posts matching the query, newest first,
// dropping posts by authors the viewer has blocked.
func (s *Service) Posts(ctx context.Context, query string, limit int, viewerID int64) ([]PostResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []PostResult{}, nil
	}
	limit = clampLimit(limit)

	key := cache.HashKey("search_posts", strings.ToLower(query), fmt.Sprintf("%d", limit), fmt.Sprintf("%d", viewerID))
	var cached []PostResult
	if err := s.cache.GetJSON(key, &cached); err == nil {
		return cached, nil
	}

	posts, err := s.posts.SearchVideos(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	blocked, err := s.blockedSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	results := make([]PostResult, 0, len(posts))
	for _, p := range posts {
		if _, ok := blocked[p.AuthorID]; ok {
			continue
		}
		r := PostResult{
			ID:       p.ID,
			AuthorID: p.AuthorID,
			Title:    p.Title,
			Content:  p.Content,
			Video:    p.Video.String,
			Topic:    p.Topic,
			Sports:   p.Sports,
		}
		if p.Author != nil {
			r.Fullname = p.Author.Fullname
			r.Avatar = p.Author.Avatar
		}
		results = append(results, r)
	}

	if err := s.cache.SetJSON(key, results, cacheTTL); err != nil && err != cache.ErrCacheDisabled {
		s.logger.Warn("search cache store failed", zap.Error(err))
	}
	return results, nil
}

// Users searches accounts matching the query over fullname, username
// and email, dropping accounts the viewer has blocked.
func (s *Service) Users(ctx context.Context, query string, limit int, viewerID int64) ([]models.AccountSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.AccountSummary{}, nil
	}
	limit = clampLimit(limit)

	key := cache.HashKey("search_users", strings.ToLower(query), fmt.Sprintf("%d", limit), fmt.Sprintf("%d", viewerID))
	var cached []models.AccountSummary
	if err := s.cache.GetJSON(key, &cached); err == nil {
		return cached, nil
	}

	accounts, err := s.accounts.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	blocked, err := s.blockedSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	results := make([]models.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := blocked[a.ID]; ok {
			continue
		}
		results = append(results, a.Summary())
	}

	if err := s.cache.SetJSON(key, results, cacheTTL); err != nil && err != cache.ErrCacheDisabled {
		s.logger.Warn("search cache store failed", zap.Error(err))
	}
	return results, nil
}

func (s *Service) blockedSet(ctx context.Context, viewerID int64) (map[int64]struct{}, error) {
	set := map[int64]struct{}{}
	if viewerID <= 0 {
		return set, nil
	}
	ids, err := s.blocks.BlockedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
