package fatsecret

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/coldshrine/calorista/internal/domain"
)

// TokenStore persists the access token pair in a JSON file. Missing, empty or
// corrupt files are treated as "no tokens saved" so a fresh checkout never
// fails to start.
type TokenStore struct {
	path string

	mu     sync.Mutex
	tokens *domain.TokenPair
}

// NewTokenStore opens the store at path, loading any saved pair.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path, tokens: loadTokenFile(path)}
}

func loadTokenFile(path string) *domain.TokenPair {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil
	}
	var pair domain.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil
	}
	if pair.OAuthToken == "" {
		return nil
	}
	return &pair
}

// Tokens returns the saved pair, or nil when none is stored.
func (s *TokenStore) Tokens() *domain.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

// Save persists the pair to disk, creating the parent directory if needed.
func (s *TokenStore) Save(pair *domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	s.tokens = pair
	return nil
}

// Clear removes the token file and forgets the pair.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	s.tokens = nil
	return nil
}
