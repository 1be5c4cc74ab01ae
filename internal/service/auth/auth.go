// Package auth implements the authentication gate: a single admin
// credentials document, bcrypt password verification, and JWT session
// tokens. The ledger core is never reachable without this gate passing.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/store"
)

// ErrInvalidCredentials indicates a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrInvalidToken indicates a missing, malformed, or expired session token.
var ErrInvalidToken = errors.New("invalid or expired session")

const credentialsDocID = "credentials"

// Credentials is the stored admin credentials document.
type Credentials struct {
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// Claims are the session token claims.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service implements the authentication gate.
type Service struct {
	store    store.Store
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// New wires an auth service.
func New(st store.Store, secret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    st,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// EnsureDefaultAdmin creates the admin credentials document when it does
// not exist yet. Called once at startup.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	creds := Credentials{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	err = s.store.Insert(ctx, store.Admin, credentialsDocID, creds)
	if errors.Is(err, models.ErrDuplicateID) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin credentials: %w", err)
	}

	s.logger.Info("default admin user created", zap.String("username", username))
	return nil
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	var creds Credentials
	if err := s.store.Get(ctx, store.Admin, credentialsDocID, &creds); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load credentials: %w", err)
	}

	if username != creds.Username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("username", username))
	return token, nil
}

// ChangePassword replaces the stored hash after verifying the current
// password.
func (s *Service) ChangePassword(ctx context.Context, current, updated string) error {
	if len(updated) < 6 {
		return models.ValidationError("New password must be at least 6 characters")
	}

	var creds Credentials
	if err := s.store.Get(ctx, store.Admin, credentialsDocID, &creds); err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.Update(ctx, store.Admin, credentialsDocID, map[string]any{"passwordHash": string(hash)}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("admin password changed")
	return nil
}

// Validate parses a session token and returns its claims.
func (s *Service) Validate(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
