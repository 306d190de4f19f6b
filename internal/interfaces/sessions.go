package interfaces

// SessionRegistry owns the in-memory session token to username mapping.
// No other component mutates it. Implementations must be safe for
// concurrent use.
type SessionRegistry interface {
	Put(token, username string)
	Get(token string) (string, bool)
	Remove(token string)
	Len() int
}
