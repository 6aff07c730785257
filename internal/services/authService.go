package services

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmarchuk/filesmanager/internal/apperr"
	"github.com/dmarchuk/filesmanager/internal/models"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository"
	"github.com/dmarchuk/filesmanager/internal/session"
)

// AuthService owns registration and the session lifecycle.
type AuthService struct {
	users    repository.UserRepository
	sessions *session.Store
	queue    queue.Enqueuer
}

func NewAuthService(users repository.UserRepository, sessions *session.Store, q queue.Enqueuer) *AuthService {
	return &AuthService{users: users, sessions: sessions, queue: q}
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a new user. A duplicate email is a conflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	if email == "" {
		return models.User{}, apperr.E(apperr.ErrInvalidInput, "Missing email")
	}
	if password == "" {
		return models.User{}, apperr.E(apperr.ErrInvalidInput, "Missing password")
	}
	if _, exists, err := s.users.FindByEmail(ctx, email); err != nil {
		return models.User{}, err
	} else if exists {
		return models.User{}, apperr.E(apperr.ErrConflict, "Already exist")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.users.Create(ctx, models.User{
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return models.User{}, err
	}

	// Fire-and-forget: a lost welcome job never blocks registration.
	if err := s.queue.EnqueueWelcome(ctx, queue.WelcomePayload{UserID: user.ID.Hex()}); err != nil {
		log.Printf("failed to enqueue welcome job for %s: %v", user.ID.Hex(), err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, exists, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !exists || !VerifyPassword(password, user.Password) {
		return "", apperr.E(apperr.ErrUnauthorized, "Unauthorized")
	}
	return s.sessions.Issue(ctx, user.ID.Hex())
}

// Logout revokes the session behind token. An unknown token is rejected
// rather than silently accepted.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.sessions.Resolve(ctx, token); err != nil {
		return apperr.E(apperr.ErrUnauthorized, "Unauthorized")
	}
	return s.sessions.Revoke(ctx, token)
}

// UserFromToken resolves a session token to its owning user. Every
// failure mode collapses to Unauthorized; the caller learns nothing about
// why a token is invalid.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (models.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return models.User{}, apperr.E(apperr.ErrUnauthorized, "Unauthorized")
	}
	user, ok, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, apperr.E(apperr.ErrUnauthorized, "Unauthorized")
	}
	return user, nil
}
