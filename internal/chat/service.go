package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
)

// Service errors
var (
	ErrNotFound    = errors.New("record not found")
	ErrSelfMessage = errors.New("cannot message self")
)

// Service implements direct messages between two accounts
type Service struct {
	accounts *db.AccountRepository
	posts    *db.PostRepository
	messages *db.MessageRepository
}

// NewService creates a new chat service
func NewService(repo *db.Repository) *Service {
	return &Service{
		accounts: db.NewAccountRepository(repo),
		posts:    db.NewPostRepository(repo),
		messages: db.NewMessageRepository(repo),
	}
}

// Send stores a message from sender to receiver. Both accounts must
// exist.
func (s *Service) Send(ctx context.Context, senderID, receiverID int64, content string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	if err := s.requireAccounts(ctx, senderID, receiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// sharedPost is the snapshot of a post's display fields embedded in
// a share message. Deliberately frozen at share time; later edits to
// the post do not rewrite old conversations.
type sharedPost struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Video    string `json:"video,omitempty"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// SharePost sends a message carrying a snapshot of the post
func (s *Service) SharePost(ctx context.Context, senderID, receiverID, postID int64, content string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	if err := s.requireAccounts(ctx, senderID, receiverID); err != nil {
		return nil, err
	}

	post, err := s.posts.GetWithDetails(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	snapshot := sharedPost{
		ID:       post.ID,
		AuthorID: post.AuthorID,
		Type:     post.Type,
		Title:    post.Title,
		Content:  post.Content,
		Video:    post.Video.String,
	}
	if post.Author != nil {
		snapshot.Fullname = post.Author.Fullname
		snapshot.Avatar = post.Author.Avatar
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		SharedPostID:   sql.NullInt64{Int64: post.ID, Valid: true},
		SharedPostData: sql.NullString{String: string(raw), Valid: true},
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation lists all messages between the user and peer oldest first
func (s *Service) Conversation(ctx context.Context, userID, peerID int64) ([]*models.Message, error) {
	return s.messages.Conversation(ctx, userID, peerID)
}

// ForUser lists every message the user sent or received
func (s *Service) ForUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	return s.messages.ForUser(ctx, userID)
}

// MarkRead marks the peer's messages to the user as read
func (s *Service) MarkRead(ctx context.Context, userID, peerID int64) (bool, error) {
	return s.messages.MarkRead(ctx, userID, peerID)
}

func (s *Service) requireAccounts(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		account, err := s.accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrNotFound
		}
	}
	return nil
}
