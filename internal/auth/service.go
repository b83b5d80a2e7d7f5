package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/models"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/config"
)

// Service errors
var (
	ErrAccountExists      = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Service implements registration, login and token verification
type Service struct {
	accounts   *db.AccountRepository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService creates a new auth service
func NewService(repo *db.Repository, cfg *config.AuthConfig) *Service {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		accounts:   db.NewAccountRepository(repo),
		secret:     []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cost,
	}
}

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Fullname string
}

// Register creates a new account. Usernames and emails are unique;
// the database indexes back the check under concurrent registration.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if username == "" || in.Password == "" || email == "" {
		return nil, fmt.Errorf("username, password and email are required")
	}

	existing, err := s.accounts.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:  username,
		Password:  string(hash),
		Email:     email,
		Fullname:  in.Fullname,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies the credentials and issues a signed token
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	if account == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

func (s *Service) issueToken(userID int64) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses a token and returns the user id it carries
func (s *Service) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
