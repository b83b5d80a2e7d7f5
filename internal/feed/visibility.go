package feed

import "strings"

// Mode is a post's declared visibility policy
type Mode int

// Visibility modes
const (
	ModePublic Mode = iota
	ModePrivate
	ModeFriends
	ModeUnknown
)

// String returns the canonical name of the mode
func (m Mode) String() string {
	switch m {
	case ModePublic:
		return "public"
	case ModePrivate:
		return "private"
	case ModeFriends:
		return "friends"
	default:
		return "unknown"
	}
}

// ParseMode normalizes a raw mode string to a Mode. The empty string
// is public. Any value containing "friend" covers the friend/friends
// variants seen in stored data. The second result reports whether the
// value was recognized; unrecognized values come back ModeUnknown and
// are treated as hidden by Visible.
func ParseMode(raw string) (Mode, bool) {
	m := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case m == "" || m == "public":
		return ModePublic, true
	case m == "private":
		return ModePrivate, true
	case strings.Contains(m, "friend"):
		return ModeFriends, true
	default:
		return ModeUnknown, false
	}
}

// Visible decides whether a viewer may see a post with the given mode
// and author. viewerID zero means anonymous. mutualSet holds author
// ids in mutual follow with the viewer, blockedSet author ids the
// viewer has blocked; both are precomputed in batch for the whole
// candidate set. Pure function, no store access.
//
// Rule order: a block overrides everything; private posts are
// author-only; public posts are visible to all; friends posts need
// self-authorship or mutuality and are never visible anonymously;
// unrecognized modes are hidden.
func Visible(mode Mode, authorID, viewerID int64, mutualSet, blockedSet map[int64]struct{}) bool {
	if _, blocked := blockedSet[authorID]; blocked {
		return false
	}

	switch mode {
	case ModePrivate:
		return viewerID != 0 && viewerID == authorID
	case ModePublic:
		return true
	case ModeFriends:
		if viewerID == 0 {
			return false
		}
		if viewerID == authorID {
			return true
		}
		_, mutual := mutualSet[authorID]
		return mutual
	default:
		return false
	}
}
