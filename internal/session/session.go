package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AnonymousUserID is the placeholder identity used for demo flows before a
// registration has been persisted.
const AnonymousUserID = "x"

// Store persists the registered user identifier across sessions. The value
// is written once per login and read wherever a user-scoped request is built.
type Store struct {
	Path string
}

// DefaultPath places the identifier under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".careerforge-user"
	}
	return filepath.Join(dir, "careerforge-cli", "user_id")
}

func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &Store{Path: path}
}

// UserID returns the stored identifier, falling back to AnonymousUserID when
// nothing has been persisted yet.
func (s *Store) UserID() string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return AnonymousUserID
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return AnonymousUserID
	}

	return id
}

// Save persists the identifier returned by a successful registration.
func (s *Store) Save(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("user id is required")
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	if err := os.WriteFile(s.Path, []byte(id+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing user id: %w", err)
	}

	return nil
}
