package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiralabs/kira/pkg/client"
)

// ErrNoToken is returned by a TokenStore when nothing is persisted.
var ErrNoToken = errors.New("no token stored")

// TokenStore persists the bearer token between runs. The session Manager is
// the only writer.
type TokenStore interface {
	Load() (client.Token, error)
	Save(client.Token) error
	Clear() error
}

// FileStore keeps the token in two files under a directory, mirroring the
// web client's two storage keys: "token" holds the access token, and
// "token_type" the Authorization scheme.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir (normally ~/.kira).
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) tokenPath() string { return filepath.Join(s.dir, "token") }
func (s *FileStore) typePath() string  { return filepath.Join(s.dir, "token_type") }

// Load reads the persisted token. Returns ErrNoToken when the token file is
// absent or empty. A missing token_type file is not an error; the scheme
// defaults to Bearer downstream.
func (s *FileStore) Load() (client.Token, error) {
	data, err := os.ReadFile(s.tokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return client.Token{}, ErrNoToken
		}
		return client.Token{}, fmt.Errorf("read token: %w", err)
	}
	access := strings.TrimSpace(string(data))
	if access == "" {
		return client.Token{}, ErrNoToken
	}

	tok := client.Token{Access: access}
	if typeData, err := os.ReadFile(s.typePath()); err == nil {
		tok.Type = strings.TrimSpace(string(typeData))
	}
	return tok, nil
}

// Save writes the token files with owner-only permissions.
func (s *FileStore) Save(tok client.Token) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.tokenPath(), []byte(tok.Access), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if tok.Type == "" {
		_ = os.Remove(s.typePath())
		return nil
	}
	if err := os.WriteFile(s.typePath(), []byte(tok.Type), 0600); err != nil {
		return fmt.Errorf("save token type: %w", err)
	}
	return nil
}

// Clear removes both token files. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	for _, path := range []string{s.tokenPath(), s.typePath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// StaticStore serves a token injected from the environment. Logins during
// the process stay in memory and logout cannot revoke the environment
// variable, so Save and Clear are deliberate no-ops.
type StaticStore struct {
	tok client.Token
}

// NewStaticStore wraps an environment-provided access token.
func NewStaticStore(access string) *StaticStore {
	return &StaticStore{tok: client.Token{Access: access}}
}

func (s *StaticStore) Load() (client.Token, error) {
	if s.tok.IsZero() {
		return client.Token{}, ErrNoToken
	}
	return s.tok, nil
}

func (s *StaticStore) Save(client.Token) error { return nil }
func (s *StaticStore) Clear() error            { return nil }
