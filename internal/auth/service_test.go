package auth

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
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/config"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Account{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db.NewRepository(gdb), &config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "secret",
		Email:    "Alice@Example.com",
		Fullname: "Alice A",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if account.ID == 0 {
		t.Fatal("expected assigned account id")
	}
	if account.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", account.Email)
	}
	if account.Password == "secret" {
		t.Error("password must be stored hashed")
	}

	token, logged, err := svc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != account.ID {
		t.Errorf("logged in as %d, want %d", logged.ID, account.ID)
	}

	userID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != account.ID {
		t.Errorf("token user = %d, want %d", userID, account.ID)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "x", Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "x", Email: "other@example.com",
	})
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("duplicate username err = %v, want ErrAccountExists", err)
	}

	_, err = svc.Register(ctx, RegisterInput{
		Username: "other", Password: "x", Email: "alice@example.com",
	})
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("duplicate email err = %v, want ErrAccountExists", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if _, _, err := svc.Login(ctx, "ghost", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "secret", Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := setupService(t)

	cases := []string{
		"",
		"not-a-token",
		"eyJhbGciOiJub25lIn0.eyJzdWIiOiIxIn0.",
	}
	for _, tok := range cases {
		if _, err := svc.VerifyToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(%q) err = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := setupService(t)
	svc.tokenTTL = -time.Minute

	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Password: "secret", Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token err = %v, want ErrInvalidToken", err)
	}
}
