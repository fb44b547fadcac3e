// Package session keeps the bearer token and cached user profile between
// login and logout.
//
// The token and the profile live under two independent storage keys. The
// store never checks token validity: a stale token is only discovered when
// the backend answers 401, at which point the request layer clears it.
package session

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

// Storage keys.
const (
	TokenKey = "authToken"
	UserKey  = "user"
)

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage Storage
}

// New wraps storage. A nil storage gets an in-memory one.
func New(storage Storage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{storage: storage}
}

// SetSession stores token and user. A nil user removes any cached profile.
// If either write fails both keys are removed, so a new token is never
// left next to a previous account's profile.
func (s *Store) SetSession(token string, user *types.User) error {
	var raw []byte
	if user != nil {
		var err error
		if raw, err = json.Marshal(user); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(token, raw); err != nil {
		s.clearLocked()
		return err
	}
	return nil
}

func (s *Store) write(token string, rawUser []byte) error {
	if err := s.storage.Set(TokenKey, token); err != nil {
		return err
	}
	if rawUser == nil {
		return s.storage.Delete(UserKey)
	}
	return s.storage.Set(UserKey, string(rawUser))
}

// Token returns the stored bearer token.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok, err := s.storage.Get(TokenKey)
	if err != nil {
		log.Warn().Err(err).Msg("read session token")
		return "", false
	}
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// User returns the cached profile, or nil when none is stored or the
// stored value is not valid JSON.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok, err := s.storage.Get(UserKey)
	if err != nil {
		log.Warn().Err(err).Msg("read session user")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var u types.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		log.Warn().Err(err).Msg("Error parsing user data")
		return nil
	}
	return &u
}

// Clear removes both keys. Storage failures are logged, not returned, so
// that a forced logout always completes.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	for _, k := range []string{TokenKey, UserKey} {
		if err := s.storage.Delete(k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("clear session key")
		}
	}
}

// IsAuthenticated reports whether a token is stored.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
