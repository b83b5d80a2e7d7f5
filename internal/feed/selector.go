package feed

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/logging"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/telemetry"
)

// FeedPost is a feed item enriched with author display fields and the
// comment count.
type FeedPost struct {
	ID           int64  `json:"id"`
	AuthorID     int64  `json:"author_id"`
	Title        string `json:"title"`
	Video        string `json:"video"`
	Content      string `json:"content"`
	HeartCount   int64  `json:"heart_count"`
	Fullname     string `json:"fullname"`
	Avatar       string `json:"avatar"`
	CommentCount int64  `json:"comment_count"`
}

// Selector picks feed items from the video candidate pool, applying
// the social-graph visibility rules before the random draw.
type Selector struct {
	posts    *db.PostRepository
	resolver *Resolver
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a new feed selector
func NewSelector(posts *db.PostRepository, resolver *Resolver) *Selector {
	return &Selector{
		posts:    posts,
		resolver: resolver,
		logger:   logging.WithComponent("feed-selector"),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PickRandom returns one video post drawn uniformly at random from
// the candidates the viewer may see, excluding the given post ids.
// viewerID zero means anonymous. Nil with no error when nothing
// remains after filtering; that is a terminal outcome, not a failure.
func (s *Selector) PickRandom(ctx context.Context, excludeIDs []int64, viewerID int64) (*FeedPost, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.pick_random")
	defer span.End()

	candidates, err := s.posts.VideoCandidates(ctx, sanitizeIDs(excludeIDs))
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	authorIDs := candidateAuthors(candidates)

	// Both sets are resolved once for the whole candidate pool
	blockedSet, err := s.resolver.BlockedAuthors(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}
	mutualSet, err := s.resolver.MutualAuthors(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	filtered := candidates[:0:0]
	for _, post := range candidates {
		mode, ok := ParseMode(post.Mode)
		if !ok {
			// Unknown modes stay hidden; log so stored garbage surfaces
			s.logger.Warn("post hidden: unrecognized visibility mode",
				zap.Int64("post_id", post.ID),
				zap.String("mode", post.Mode),
			)
		}
		if Visible(mode, post.AuthorID, viewerID, mutualSet, blockedSet) {
			filtered = append(filtered, post)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}

	selected := filtered[s.intn(len(filtered))]
	return s.enrich(ctx, selected)
}

// FirstTwo returns the first two video posts by id ascending, the
// client's bootstrap query before it starts asking for random items.
func (s *Selector) FirstTwo(ctx context.Context) ([]*FeedPost, error) {
	posts, err := s.posts.FirstVideos(ctx, 2)
	if err != nil {
		return nil, err
	}

	result := make([]*FeedPost, 0, len(posts))
	for _, post := range posts {
		item, err := s.enrich(ctx, post)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *Selector) enrich(ctx context.Context, post *models.Post) (*FeedPost, error) {
	counts, err := s.posts.CommentCounts(ctx, []int64{post.ID})
	if err != nil {
		return nil, err
	}

	item := &FeedPost{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		Title:        post.Title,
		Video:        post.Video.String,
		Content:      post.Content,
		HeartCount:   post.HeartCount,
		CommentCount: counts[post.ID],
	}
	if post.Author != nil {
		item.Fullname = post.Author.Fullname
		item.Avatar = post.Author.Avatar
	}
	return item, nil
}

func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// sanitizeIDs drops non-positive ids and duplicates; the exclusion
// set must tolerate residual garbage from the caller-facing boundary.
func sanitizeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	clean := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		clean = append(clean, id)
	}
	return clean
}

func candidateAuthors(posts []*models.Post) []int64 {
	seen := make(map[int64]struct{}, len(posts))
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.AuthorID]; dup {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}
	return ids
}
