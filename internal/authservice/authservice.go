// authservice.go
package authservice

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/haguru/torii/internal/apperrors"
	"github.com/haguru/torii/internal/auth"
	"github.com/haguru/torii/internal/interfaces"
	"github.com/haguru/torii/pkg/helper"
)

// AuthService validates credentials against the credential store and owns
// session issuance/revocation through the session registry.
type AuthService struct {
	Store      interfaces.CredentialStore
	Sessions   interfaces.SessionRegistry
	Logger     interfaces.Logger
	HashScheme string

	// mu serializes the register existence check against the append so two
	// in-process registrations of the same username cannot race past it.
	mu sync.Mutex
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(store interfaces.CredentialStore, sessions interfaces.SessionRegistry,
	logger interfaces.Logger, hashScheme string,
) *AuthService {
	if hashScheme == "" {
		hashScheme = auth.SchemeSHA256
	}
	return &AuthService{
		Store:      store,
		Sessions:   sessions,
		Logger:     logger,
		HashScheme: hashScheme,
	}
}

// Register hashes the password and persists the credential pair.
// It fails with apperrors.ErrValidation on empty fields after trimming and
// apperrors.ErrConflict if the username is already stored.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	funcName := helper.GetFuncName()
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyCredentials)
	}

	s.Logger.Info("Registering user", "func", funcName, "user", username)

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Store.Load(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "user", username, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}

	if _, exists := users[username]; exists {
		s.Logger.Warn(ErrUsernameTaken, "func", funcName, "user", username)
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, username)
	}

	hash, err := auth.HashPassword(password, s.HashScheme)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	if err := s.Store.Save(ctx, username, hash); err != nil {
		s.Logger.Error(ErrFailedToSaveUser, "func", funcName, "user", username, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToSaveUser, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "user", username)
	return nil
}

// Login verifies the credentials and returns a fresh session token
// registered against the username. Bad input, an unknown username and a
// digest mismatch all fail with apperrors.ErrAuth.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	funcName := helper.GetFuncName()
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrAuth, ErrEmptyCredentials)
	}

	users, err := s.Store.Load(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}

	storedHash, exists := users[username]
	if !exists || !auth.VerifyPassword(password, storedHash) {
		s.Logger.Warn(ErrUnknownUserOrPassword, "func", funcName, "user", username)
		return "", fmt.Errorf("%w: %s", apperrors.ErrAuth, ErrUnknownUserOrPassword)
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		s.Logger.Error(ErrFailedToIssueToken, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToIssueToken, err)
	}

	s.Sessions.Put(token, username)
	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	return token, nil
}

// Logout removes the session token unconditionally.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.Sessions.Remove(token)
}

// ResolveSession returns the username owning the token. An empty or unknown
// token yields no session.
func (s *AuthService) ResolveSession(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return s.Sessions.Get(token)
}
