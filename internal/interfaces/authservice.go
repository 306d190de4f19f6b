package interfaces

import "context"

type AuthService interface {
	// Register validates and persists a new credential pair.
	Register(ctx context.Context, username, password string) error

	// Login validates credentials and returns a new session token.
	Login(ctx context.Context, username, password string) (string, error)

	// Logout removes the session token. No-op if the token is unknown.
	Logout(token string)

	// ResolveSession returns the username owning the token, if any.
	ResolveSession(token string) (string, bool)
}
