package feed

import (
	"context"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
)

// Resolver computes the social-graph sets the visibility rules need,
// batched over a candidate author set: never one query per candidate.
type Resolver struct {
	follows *db.FollowRepository
	blocks  *db.BlockRepository
}

// NewResolver creates a new resolver
func NewResolver(follows *db.FollowRepository, blocks *db.BlockRepository) *Resolver {
	return &Resolver{follows: follows, blocks: blocks}
}

// MutualAuthors returns the subset of candidateIDs in mutual follow
// with the viewer: one query for who the viewer follows among the
// candidates, one for who follows the viewer back, intersected.
// Anonymous viewers have no mutuals. The viewer's own id is not
// special-cased here; the evaluator handles self-authorship by
// identity so no self-follow edges are needed.
func (r *Resolver) MutualAuthors(ctx context.Context, viewerID int64, candidateIDs []int64) (map[int64]struct{}, error) {
	if viewerID == 0 || len(candidateIDs) == 0 {
		return map[int64]struct{}{}, nil
	}

	followed, err := r.follows.FollowedAmong(ctx, viewerID, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(followed) == 0 {
		return map[int64]struct{}{}, nil
	}

	followers, err := r.follows.FollowersAmong(ctx, viewerID, candidateIDs)
	if err != nil {
		return nil, err
	}

	mutual := make(map[int64]struct{})
	for id := range followed {
		if _, ok := followers[id]; ok {
			mutual[id] = struct{}{}
		}
	}
	return mutual, nil
}

// BlockedAuthors returns the subset of candidateIDs the viewer has
// blocked. Anonymous viewers cannot have blocks, so the empty set
// comes back and no filtering applies to them.
func (r *Resolver) BlockedAuthors(ctx context.Context, viewerID int64, candidateIDs []int64) (map[int64]struct{}, error) {
	if viewerID == 0 || len(candidateIDs) == 0 {
		return map[int64]struct{}{}, nil
	}
	return r.blocks.BlockedAmong(ctx, viewerID, candidateIDs)
}

// IsMutual reports whether two users follow each other. Used by the
// profile view where the candidate set is a single author.
func (r *Resolver) IsMutual(ctx context.Context, userID, otherID int64) (bool, error) {
	if userID == 0 || otherID == 0 {
		return false, nil
	}
	if userID == otherID {
		return true, nil
	}
	mutual, err := r.MutualAuthors(ctx, userID, []int64{otherID})
	if err != nil {
		return false, err
	}
	_, ok := mutual[otherID]
	return ok, nil
}
