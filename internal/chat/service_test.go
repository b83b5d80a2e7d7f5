package chat

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Account{}, &models.Post{}, &models.PostImage{}, &models.Message{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db.NewRepository(gdb)), gdb
}

func seedAccount(t *testing.T, gdb *gorm.DB, id int64, username string) {
	t.Helper()
	acc := &models.Account{
		ID:        id,
		Username:  username,
		Password:  "x",
		Email:     username + "@example.com",
		Fullname:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(acc).Error; err != nil {
		t.Fatalf("seed account %s: %v", username, err)
	}
}

func TestSendAndConversation(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")
	seedAccount(t, gdb, 2, "bob")
	seedAccount(t, gdb, 3, "carol")

	if _, err := svc.Send(ctx, 1, 2, "hi bob"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := svc.Send(ctx, 2, 1, "hi alice"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := svc.Send(ctx, 1, 3, "hi carol"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	conv, err := svc.Conversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(conv) != 2 {
		t.Fatalf("conversation = %d messages, want 2", len(conv))
	}
	if conv[0].Content != "hi bob" {
		t.Errorf("oldest first: got %q", conv[0].Content)
	}
	if conv[0].Sender == nil || conv[0].Sender.Username != "alice" {
		t.Error("expected sender preloaded")
	}

	all, err := svc.ForUser(ctx, 1)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ForUser = %d messages, want 3", len(all))
	}
}

func TestSendValidation(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")

	if _, err := svc.Send(ctx, 1, 1, "me"); !errors.Is(err, ErrSelfMessage) {
		t.Errorf("self message err = %v, want ErrSelfMessage", err)
	}
	if _, err := svc.Send(ctx, 1, 99, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing receiver err = %v, want ErrNotFound", err)
	}
}

func TestMarkRead(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")
	seedAccount(t, gdb, 2, "bob")

	if _, err := svc.Send(ctx, 2, 1, "one"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := svc.Send(ctx, 2, 1, "two"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	changed, err := svc.MarkRead(ctx, 1, 2)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !changed {
		t.Error("unread messages existed, MarkRead should report true")
	}

	changed, err = svc.MarkRead(ctx, 1, 2)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if changed {
		t.Error("repeat MarkRead should report false")
	}

	var unread int64
	if err := gdb.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", 1, false).
		Count(&unread).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread = %d, want 0", unread)
	}
}

func TestSharePostSnapshot(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")
	seedAccount(t, gdb, 2, "bob")
	post := &models.Post{
		ID:        10,
		AuthorID:  1,
		Type:      models.PostTypeVideo,
		Mode:      "public",
		Title:     "original title",
		CreatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}

	msg, err := svc.SharePost(ctx, 1, 2, 10, "watch this")
	if err != nil {
		t.Fatalf("SharePost: %v", err)
	}
	if !msg.SharedPostID.Valid || msg.SharedPostID.Int64 != 10 {
		t.Errorf("shared post id = %+v, want 10", msg.SharedPostID)
	}

	// the snapshot is frozen; editing the post must not change it
	if err := gdb.Model(&models.Post{}).Where("id = ?", 10).
		UpdateColumn("title", "edited title").Error; err != nil {
		t.Fatalf("edit post: %v", err)
	}

	var stored models.Message
	if err := gdb.First(&stored, msg.ID).Error; err != nil {
		t.Fatalf("load message: %v", err)
	}
	var snapshot map[string]interface{}
	if err := json.Unmarshal([]byte(stored.SharedPostData.String), &snapshot); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snapshot["title"] != "original title" {
		t.Errorf("snapshot title = %v, want the share-time title", snapshot["title"])
	}

	if _, err := svc.SharePost(ctx, 1, 2, 999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing post err = %v, want ErrNotFound", err)
	}
}
