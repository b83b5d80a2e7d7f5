package content

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/social"
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
		&models.Account{}, &models.Post{}, &models.PostImage{},
		&models.Comment{}, &models.CommentLike{}, &models.PostLike{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := db.NewRepository(gdb)
	return NewService(repo, social.NewNotifier(repo)), gdb
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

func TestCreatePostWithImages(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")

	post, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID:  1,
		Type:      models.PostTypeImage,
		Mode:      "public",
		Title:     "match day",
		ImageURLs: []string{"a.jpg", "b.jpg", "c.jpg"},
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected assigned post id")
	}

	details, err := svc.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if len(details.Post.Images) != 3 {
		t.Fatalf("images = %d, want 3", len(details.Post.Images))
	}
	for i, img := range details.Post.Images {
		if img.Order != i {
			t.Errorf("image %d order = %d, want %d", i, img.Order, i)
		}
	}
	if details.Post.Author == nil || details.Post.Author.Username != "alice" {
		t.Error("expected author preloaded")
	}
}

func TestCreatePostRejectsUnknownType(t *testing.T) {
	svc, gdb := setupService(t)
	seedAccount(t, gdb, 1, "alice")

	_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Type: "poll"})
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("err = %v, want ErrInvalidType", err)
	}
}

func TestVideoStorageKey(t *testing.T) {
	key := VideoStorageKey("Clip.MP4")
	if !strings.HasPrefix(key, "videos/") {
		t.Errorf("key %q should live under videos/", key)
	}
	if !strings.HasSuffix(key, ".mp4") {
		t.Errorf("key %q should keep a lowercased extension", key)
	}
	if key == VideoStorageKey("Clip.MP4") {
		t.Error("two keys for the same name should differ")
	}
}

func TestCommentTree(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")
	seedAccount(t, gdb, 2, "bob")

	post, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID: 1, Type: models.PostTypeText, Mode: "public", Content: "hello",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	first, err := svc.CreateComment(ctx, post.ID, 2, nil, "first")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	// force distinct timestamps so ordering is deterministic
	if err := gdb.Model(&models.Comment{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	second, err := svc.CreateComment(ctx, post.ID, 1, nil, "second")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if _, err := svc.CreateComment(ctx, post.ID, 1, &first.ID, "reply"); err != nil {
		t.Fatalf("CreateComment reply: %v", err)
	}

	tree, err := svc.CommentTree(ctx, post.ID)
	if err != nil {
		t.Fatalf("CommentTree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("top-level comments = %d, want 2", len(tree))
	}
	if tree[0].Comment.ID != second.ID {
		t.Errorf("newest top-level comment first: got %d, want %d", tree[0].Comment.ID, second.ID)
	}
	if len(tree[1].Replies) != 1 || tree[1].Replies[0].Comment.Content != "reply" {
		t.Errorf("expected one reply under the first comment, got %+v", tree[1].Replies)
	}
}

func TestCreateCommentBadParent(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")

	post, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID: 1, Type: models.PostTypeText, Mode: "public",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	other, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID: 1, Type: models.PostTypeText, Mode: "public",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	stray, err := svc.CreateComment(ctx, other.ID, 1, nil, "elsewhere")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	// missing parent
	missing := int64(9999)
	if _, err := svc.CreateComment(ctx, post.ID, 1, &missing, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing parent err = %v, want ErrNotFound", err)
	}
	// parent on a different post
	if _, err := svc.CreateComment(ctx, post.ID, 1, &stray.ID, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-post parent err = %v, want ErrNotFound", err)
	}
	// missing post
	if _, err := svc.CreateComment(ctx, 9999, 1, nil, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing post err = %v, want ErrNotFound", err)
	}
}

func TestUpdateAndDeleteCommentOwnership(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")
	seedAccount(t, gdb, 2, "bob")

	post, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID: 1, Type: models.PostTypeText, Mode: "public",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	comment, err := svc.CreateComment(ctx, post.ID, 2, nil, "original")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if _, err := svc.UpdateComment(ctx, comment.ID, 1, "hijack"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign update err = %v, want ErrNotOwner", err)
	}
	updated, err := svc.UpdateComment(ctx, comment.ID, 2, "edited")
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("content = %q, want %q", updated.Content, "edited")
	}

	if err := svc.DeleteComment(ctx, comment.ID, 1); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign delete err = %v, want ErrNotOwner", err)
	}
	if err := svc.DeleteComment(ctx, comment.ID, 2); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if err := svc.DeleteComment(ctx, comment.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("repeat delete err = %v, want ErrNotFound", err)
	}
}
