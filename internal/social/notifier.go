package social

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/logging"
)

// Notifier creates notification rows for social events. All of it is
// best-effort: failures are logged and swallowed, never surfaced to
// the primary operation's caller.
type Notifier struct {
	accounts      *db.AccountRepository
	posts         *db.PostRepository
	comments      *db.CommentRepository
	notifications *db.NotificationRepository
	logger        *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(repo *db.Repository) *Notifier {
	return &Notifier{
		accounts:      db.NewAccountRepository(repo),
		posts:         db.NewPostRepository(repo),
		comments:      db.NewCommentRepository(repo),
		notifications: db.NewNotificationRepository(repo),
		logger:        logging.WithComponent("notifier"),
	}
}

// Followed records that actor started following user
func (n *Notifier) Followed(ctx context.Context, userID, actorID int64) {
	actor := n.actorName(ctx, actorID)
	n.create(ctx, userID, actorID, fmt.Sprintf("%s started following you", actor))
}

// PostLiked records that actor liked the post, addressed to its author
func (n *Notifier) PostLiked(ctx context.Context, postID, actorID int64) {
	post, err := n.posts.GetByID(ctx, postID)
	if err != nil || post == nil {
		n.drop("post_liked", err)
		return
	}
	if post.AuthorID == actorID {
		return // no self-notifications
	}
	actor := n.actorName(ctx, actorID)
	n.create(ctx, post.AuthorID, actorID, fmt.Sprintf("%s liked your post", actor))
}

// CommentLiked records that actor liked the comment
func (n *Notifier) CommentLiked(ctx context.Context, commentID, actorID int64) {
	comment, err := n.comments.GetByID(ctx, commentID)
	if err != nil || comment == nil {
		n.drop("comment_liked", err)
		return
	}
	if comment.AuthorID == actorID {
		return
	}
	actor := n.actorName(ctx, actorID)
	n.create(ctx, comment.AuthorID, actorID, fmt.Sprintf("%s liked your comment", actor))
}

// Commented records that actor commented on the post
func (n *Notifier) Commented(ctx context.Context, postID, actorID int64) {
	post, err := n.posts.GetByID(ctx, postID)
	if err != nil || post == nil {
		n.drop("commented", err)
		return
	}
	if post.AuthorID == actorID {
		return
	}
	actor := n.actorName(ctx, actorID)
	n.create(ctx, post.AuthorID, actorID, fmt.Sprintf("%s commented on your post", actor))
}

// Replied records that actor replied to the parent comment
func (n *Notifier) Replied(ctx context.Context, parentCommentID, actorID int64) {
	parent, err := n.comments.GetByID(ctx, parentCommentID)
	if err != nil || parent == nil {
		n.drop("replied", err)
		return
	}
	if parent.AuthorID == actorID {
		return
	}
	actor := n.actorName(ctx, actorID)
	n.create(ctx, parent.AuthorID, actorID, fmt.Sprintf("%s replied to your comment", actor))
}

func (n *Notifier) actorName(ctx context.Context, actorID int64) string {
	actor, err := n.accounts.GetByID(ctx, actorID)
	if err != nil || actor == nil {
		return "Someone"
	}
	if actor.Fullname != "" {
		return actor.Fullname
	}
	return actor.Username
}

func (n *Notifier) create(ctx context.Context, userID, actorID int64, title string) {
	notification := &models.Notification{
		UserID:    userID,
		ActorID:   sql.NullInt64{Int64: actorID, Valid: actorID != 0},
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("notification dropped",
			zap.Int64("user_id", userID),
			zap.Int64("actor_id", actorID),
			zap.Error(err),
		)
	}
}

func (n *Notifier) drop(event string, err error) {
	n.logger.Warn("notification dropped", zap.String("event", event), zap.Error(err))
}
