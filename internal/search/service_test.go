package search

import (
	"context"
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
		&models.Account{}, &models.Post{}, &models.PostImage{}, &models.Block{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db.NewRepository(gdb), nil), gdb
}

func seedAccount(t *testing.T, gdb *gorm.DB, id int64, username, fullname string) {
	t.Helper()
	acc := &models.Account{
		ID:        id,
		Username:  username,
		Password:  "x",
		Email:     username + "@example.com",
		Fullname:  fullname,
		CreatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(acc).Error; err != nil {
		t.Fatalf("seed account %s: %v", username, err)
	}
}

func seedVideo(t *testing.T, gdb *gorm.DB, id, authorID int64, title, topic string) {
	t.Helper()
	post := &models.Post{
		ID:        id,
		AuthorID:  authorID,
		Type:      models.PostTypeVideo,
		Mode:      "public",
		Title:     title,
		Topic:     topic,
		CreatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(post).Error; err != nil {
		t.Fatalf("seed post %d: %v", id, err)
	}
}

func seedBlock(t *testing.T, gdb *gorm.DB, userID, blockedID int64) {
	t.Helper()
	b := &models.Block{UserID: userID, BlockedID: blockedID, CreatedAt: time.Now().UTC()}
	if err := gdb.Create(b).Error; err != nil {
		t.Fatalf("seed block %d->%d: %v", userID, blockedID, err)
	}
}

func TestPostsSearch(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice", "Alice A")
	seedAccount(t, gdb, 2, "bob", "Bob B")
	seedVideo(t, gdb, 10, 1, "Derby Highlights", "football")
	seedVideo(t, gdb, 11, 2, "Tennis final", "tennis")
	seedVideo(t, gdb, 12, 2, "derby preview", "football")

	results, err := svc.Posts(ctx, "derby", 10, 0)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (case-insensitive match)", len(results))
	}
	for _, r := range results {
		if r.Fullname == "" {
			t.Error("expected author fullname on result")
		}
	}
}

func TestPostsSearchBlockFiltered(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice", "Alice A")
	seedAccount(t, gdb, 2, "bob", "Bob B")
	seedAccount(t, gdb, 3, "carol", "Carol C")
	seedVideo(t, gdb, 10, 1, "derby one", "football")
	seedVideo(t, gdb, 11, 2, "derby two", "football")
	seedBlock(t, gdb, 3, 2)

	results, err := svc.Posts(ctx, "derby", 10, 3)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(results) != 1 || results[0].AuthorID != 1 {
		t.Errorf("viewer 3 should not see blocked author 2, got %+v", results)
	}
}

func TestUsersSearch(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice", "Alice Anderson")
	seedAccount(t, gdb, 2, "bob", "Bob Anderson")
	seedAccount(t, gdb, 3, "carol", "Carol C")
	seedBlock(t, gdb, 1, 2)

	results, err := svc.Users(ctx, "anderson", 10, 1)
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(results) != 1 || results[0].Username != "alice" {
		t.Errorf("viewer 1 should only see alice, got %+v", results)
	}
}

func TestEmptyQuery(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	posts, err := svc.Posts(ctx, "   ", 10, 0)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("empty query should return no posts, got %d", len(posts))
	}

	users, err := svc.Users(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("empty query should return no users, got %d", len(users))
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, defaultLimit},
		{-3, defaultLimit},
		{5, 5},
		{maxLimit + 1, maxLimit},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
