// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/feature/auth/domain/entity"
	userentity "newsportal/internal/feature/user/domain/entity"
)

// dummyHash keeps the bcrypt comparison running even when the username
// does not exist, so login timing does not leak account existence.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserReader resolves credentials to accounts. Defined here by the
// consumer, implemented by the user feature adapters.
type UserReader interface {
	FindActiveByUsername(ctx context.Context, username string) (*userentity.User, error)
	FindActiveByID(ctx context.Context, id uint) (*userentity.User, error)
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, username string) (string, error)
}

// SessionRepository abstracts the refresh session store.
type SessionRepository interface {
	// Create persists a new session until its expiration.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by refresh token value. Returns
	// ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// TokenPair is what a successful login or refresh hands to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users      UserReader
	tokens     TokenGenerator
	sessions   SessionRepository
	refreshTTL time.Duration
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserReader, tokens TokenGenerator, sessions SessionRepository, refreshTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		tokens:     tokens,
		sessions:   sessions,
		refreshTTL: refreshTTL,
	}
}

// Login authenticates the credentials and returns a fresh token pair.
// The bcrypt comparison always runs, found user or not.
func (u *authUsecase) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := u.users.FindActiveByUsername(ctx, username)

	hash := dummyHash
	if err == nil {
		hash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(ctx, user)
}

// Refresh rotates the refresh token and returns a new pair. The old
// session is removed even when it turns out to be expired.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	// The account may have been deleted since the session was created.
	user, err := u.users.FindActiveByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return u.issue(ctx, user)
}

// Logout revokes the refresh session. A token that is already gone is
// treated as success.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	err := u.sessions.Delete(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

func (u *authUsecase) issue(ctx context.Context, user *userentity.User) (*TokenPair, error) {
	access, err := u.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: session.ID}, nil
}
