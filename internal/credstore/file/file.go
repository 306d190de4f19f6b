// Package file implements the credential store on the legacy flat file:
// UTF-8 text, one `username:hash` record per line, append-only.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/haguru/torii/internal/apperrors"
	"github.com/haguru/torii/internal/interfaces"
)

const (
	// Separator splits a record line into username and hash at its first
	// occurrence. Usernames containing the separator are not representable.
	Separator = ":"

	filePerm = 0o600
)

// Store is the flat-file credential store. The mutex serializes appends so
// concurrent writers cannot interleave partial lines.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a flat-file store backed by the given path. The file is
// created lazily on the first Save.
func NewStore(path string) (interfaces.CredentialStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credential file path is empty")
	}
	return &Store{path: path}, nil
}

// Load scans the file line by line. Blank or malformed lines (no separator)
// are skipped. On duplicate usernames the first occurrence wins. A missing
// file yields an empty map.
func (s *Store) Load(_ context.Context) (map[string]string, error) {
	users := make(map[string]string)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return users, nil
		}
		return nil, fmt.Errorf("%w: failed to open %s: %v", apperrors.ErrStorage, s.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, Separator) {
			continue
		}
		parts := strings.SplitN(line, Separator, 2)
		username := strings.TrimSpace(parts[0])
		hash := strings.TrimSpace(parts[1])
		if username == "" {
			continue
		}
		if _, exists := users[username]; exists {
			continue
		}
		users[username] = hash
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", apperrors.ErrStorage, s.path, err)
	}

	return users, nil
}

// Save appends a `username:hash` line. It does not check uniqueness; that is
// the caller's job.
func (s *Store) Save(_ context.Context, username, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s for append: %v", apperrors.ErrStorage, s.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s%s%s\n", username, Separator, hash); err != nil {
		return fmt.Errorf("%w: failed to append to %s: %v", apperrors.ErrStorage, s.path, err)
	}

	return nil
}

// EnsureIndices is a no-op for the flat file; the format has no indices.
func (s *Store) EnsureIndices(_ context.Context) error {
	return nil
}

// Close is a no-op; the file is opened per operation.
func (s *Store) Close(_ context.Context) error {
	return nil
}
