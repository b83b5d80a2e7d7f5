package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/feed"
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
		&models.Account{}, &models.Post{}, &models.PostImage{},
		&models.Follow{}, &models.Block{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := db.NewRepository(gdb)
	resolver := feed.NewResolver(db.NewFollowRepository(repo), db.NewBlockRepository(repo))
	return NewService(repo, resolver, bcrypt.MinCost), gdb
}

func seedAccount(t *testing.T, gdb *gorm.DB, id int64, username string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	acc := &models.Account{
		ID:        id,
		Username:  username,
		Password:  string(hash),
		Email:     username + "@example.com",
		Fullname:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(acc).Error; err != nil {
		t.Fatalf("seed account %s: %v", username, err)
	}
}

func seedVideo(t *testing.T, gdb *gorm.DB, id, authorID int64, mode string) {
	t.Helper()
	post := &models.Post{
		ID:        id,
		AuthorID:  authorID,
		Type:      models.PostTypeVideo,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(post).Error; err != nil {
		t.Fatalf("seed post %d: %v", id, err)
	}
}

func seedFollow(t *testing.T, gdb *gorm.DB, followerID, followingID int64) {
	t.Helper()
	f := &models.Follow{FollowerID: followerID, FollowingID: followingID, CreatedAt: time.Now().UTC()}
	if err := gdb.Create(f).Error; err != nil {
		t.Fatalf("seed follow %d->%d: %v", followerID, followingID, err)
	}
}

func TestGetProfileVisibility(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")
	seedAccount(t, gdb, 2, "bob")
	seedAccount(t, gdb, 3, "carol")
	seedVideo(t, gdb, 10, 1, "public")
	seedVideo(t, gdb, 11, 1, "friend")
	seedVideo(t, gdb, 12, 1, "private")
	// alice<->bob mutual, carol only follows alice
	seedFollow(t, gdb, 1, 2)
	seedFollow(t, gdb, 2, 1)
	seedFollow(t, gdb, 3, 1)

	cases := []struct {
		name     string
		viewerID int64
		want     int
	}{
		{"owner sees everything", 1, 3},
		{"mutual friend sees public and friends", 2, 2},
		{"one-way follower sees public only", 3, 1},
		{"anonymous sees public only", 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := svc.Get(ctx, 1, tc.viewerID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(p.Videos) != tc.want {
				t.Errorf("videos = %d, want %d", len(p.Videos), tc.want)
			}
		})
	}

	p, err := svc.Get(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Followers != 2 {
		t.Errorf("followers = %d, want 2", p.Followers)
	}
	if p.Following != 1 {
		t.Errorf("following = %d, want 1", p.Following)
	}
	if !p.IsFollowing {
		t.Error("bob follows alice, IsFollowing should be true")
	}
}

func TestGetProfileMissing(t *testing.T) {
	svc, _ := setupService(t)
	if _, err := svc.Get(context.Background(), 99, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")

	name := "Alice A."
	story := "loves football"
	account, err := svc.Update(ctx, 1, UpdateInput{Fullname: &name, Story: &story})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if account.Fullname != name {
		t.Errorf("fullname = %q, want %q", account.Fullname, name)
	}
	if !account.Story.Valid || account.Story.String != story {
		t.Errorf("story = %+v, want %q", account.Story, story)
	}

	// nil fields stay untouched
	avatar := "a.png"
	account, err = svc.Update(ctx, 1, UpdateInput{Avatar: &avatar})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if account.Fullname != name {
		t.Errorf("fullname changed to %q", account.Fullname)
	}
	if account.Avatar != avatar {
		t.Errorf("avatar = %q, want %q", account.Avatar, avatar)
	}
}

func TestChangePassword(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")

	if err := svc.ChangePassword(ctx, 1, "wrong", "next"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("err = %v, want ErrWrongPassword", err)
	}
	if err := svc.ChangePassword(ctx, 1, "secret", "next"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	var account models.Account
	if err := gdb.First(&account, 1).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("next")); err != nil {
		t.Error("new password should verify")
	}
}

func TestMutualFollowings(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	seedAccount(t, gdb, 1, "alice")
	seedAccount(t, gdb, 2, "bob")
	seedAccount(t, gdb, 3, "carol")
	seedFollow(t, gdb, 1, 2)
	seedFollow(t, gdb, 2, 1)
	seedFollow(t, gdb, 1, 3)

	mutual, err := svc.MutualFollowings(ctx, 1, 10)
	if err != nil {
		t.Fatalf("MutualFollowings: %v", err)
	}
	if len(mutual) != 1 || mutual[0].Username != "bob" {
		t.Errorf("mutual = %+v, want just bob", mutual)
	}

	followers, err := svc.Followers(ctx, 1)
	if err != nil {
		t.Fatalf("Followers: %v", err)
	}
	if len(followers) != 1 || followers[0].Username != "bob" {
		t.Errorf("followers = %+v, want just bob", followers)
	}

	following, err := svc.Following(ctx, 1)
	if err != nil {
		t.Fatalf("Following: %v", err)
	}
	if len(following) != 2 {
		t.Errorf("following = %d accounts, want 2", len(following))
	}
}
