package profile

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/feed"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
)

// Service errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrWrongPassword = errors.New("wrong password")
)

// Service renders user profiles. The target's videos go through the
// same visibility rules as the feed, so a profile never leaks a post
// its owner hid from the viewer.
type Service struct {
	accounts   *db.AccountRepository
	posts      *db.PostRepository
	follows    *db.FollowRepository
	resolver   *feed.Resolver
	bcryptCost int
}

// NewService creates a new profile service
func NewService(repo *db.Repository, resolver *feed.Resolver, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		accounts:   db.NewAccountRepository(repo),
		posts:      db.NewPostRepository(repo),
		follows:    db.NewFollowRepository(repo),
		resolver:   resolver,
		bcryptCost: bcryptCost,
	}
}

// Profile is an account rendered for the profile page
type Profile struct {
	Account     models.AccountSummary `json:"account"`
	Story       string                `json:"story"`
	Followers   int64                 `json:"followers"`
	Following   int64                 `json:"following"`
	IsFollowing bool                  `json:"is_following"`
	Videos      []*models.Post        `json:"videos"`
}

// Get renders the target's profile as seen by the viewer. Mutuality
// between the pair is resolved once and reused for every video.
func (s *Service) Get(ctx context.Context, targetID, viewerID int64) (*Profile, error) {
	account, err := s.accounts.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}

	followers, err := s.follows.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, targetID)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Account:   account.Summary(),
		Story:     account.Story.String,
		Followers: followers,
		Following: following,
	}

	if viewerID > 0 && viewerID != targetID {
		edge, err := s.follows.Get(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
		p.IsFollowing = edge != nil
	}

	videos, err := s.visibleVideos(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	p.Videos = videos
	return p, nil
}

// visibleVideos lists the target's videos the viewer may see, newest
// first. One mutuality check covers the whole list since every post
// shares the same author.
func (s *Service) visibleVideos(ctx context.Context, targetID, viewerID int64) ([]*models.Post, error) {
	videos, err := s.posts.VideosByAuthor(ctx, targetID)
	if err != nil {
		return nil, err
	}

	mutualSet := map[int64]struct{}{}
	blockedSet := map[int64]struct{}{}
	if viewerID > 0 && viewerID != targetID {
		mutual, err := s.resolver.IsMutual(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
		if mutual {
			mutualSet[targetID] = struct{}{}
		}
		blockedSet, err = s.resolver.BlockedAuthors(ctx, viewerID, []int64{targetID})
		if err != nil {
			return nil, err
		}
	}

	visible := make([]*models.Post, 0, len(videos))
	for _, v := range videos {
		mode, _ := feed.ParseMode(v.Mode)
		if feed.Visible(mode, v.AuthorID, viewerID, mutualSet, blockedSet) {
			visible = append(visible, v)
		}
	}
	return visible, nil
}

// UpdateInput carries the optional profile mutations; nil fields are
// left untouched.
type UpdateInput struct {
	Fullname *string
	Story    *string
	Avatar   *string
}

// Update applies the non-nil profile fields
func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) (*models.Account, error) {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}

	if in.Fullname != nil {
		account.Fullname = *in.Fullname
	}
	if in.Story != nil {
		account.Story = sql.NullString{String: *in.Story, Valid: *in.Story != ""}
	}
	if in.Avatar != nil {
		account.Avatar = *in.Avatar
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ChangePassword verifies the old password and stores a fresh hash
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	account.Password = string(hash)
	return s.accounts.Update(ctx, account)
}

// Followers lists the accounts following the user
func (s *Service) Followers(ctx context.Context, userID int64) ([]models.AccountSummary, error) {
	ids, err := s.follows.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, ids)
}

// Following lists the accounts the user follows
func (s *Service) Following(ctx context.Context, userID int64) ([]models.AccountSummary, error) {
	ids, err := s.follows.FollowingIDs(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, ids)
}

// MutualFollowings lists accounts the user follows that follow back
func (s *Service) MutualFollowings(ctx context.Context, userID int64, limit int) ([]models.AccountSummary, error) {
	ids, err := s.follows.FollowingIDs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	back, err := s.follows.FollowersAmong(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	mutual := make([]int64, 0, len(back))
	for _, id := range ids {
		if _, ok := back[id]; ok {
			mutual = append(mutual, id)
		}
	}
	return s.summaries(ctx, mutual)
}

func (s *Service) summaries(ctx context.Context, ids []int64) ([]models.AccountSummary, error) {
	if len(ids) == 0 {
		return []models.AccountSummary{}, nil
	}
	accounts, err := s.accounts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	out := make([]models.AccountSummary, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a.Summary())
		}
	}
	return out, nil
}
