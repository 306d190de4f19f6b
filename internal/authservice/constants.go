package authservice

const (
	// Error messages for auth service operations
	ErrFailedToHashPassword  = "failed to hash password" // #nosec G101
	ErrFailedToLoadUsers     = "failed to load users"
	ErrFailedToSaveUser      = "failed to save user"
	ErrFailedToIssueToken    = "failed to issue session token"
	ErrEmptyCredentials      = "username and password are required"
	ErrUsernameTaken         = "username already exists"
	ErrUnknownUserOrPassword = "unknown username or wrong password"
)
