package models

// User represents a credential record: a unique username and the stored
// password digest. Records are immutable once written.
type User struct {
	Username     string `bson:"username" db:"username"`
	PasswordHash string `bson:"password_hash" db:"password_hash"`
}

// NewUser creates a new User instance with the given username and password hash.
// Note: No validation is performed here.
func NewUser(username string, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
	}
}
