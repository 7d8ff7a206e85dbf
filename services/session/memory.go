// Package sessionsvc stores the IDs of logged-out access tokens.
package sessionsvc

import (
	"context"
	"sync"
	"time"

	"github.com/alfurqan/campusreg/core/auth"
)

var nowFunc = time.Now // mockable

// MemoryStore keeps revoked token IDs in process; suitable for a single API instance.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time // {tokenID: expiry}
}

var _ auth.RevocationStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purge()
	if until.After(nowFunc()) {
		s.revoked[tokenID] = until
	}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	return ok && until.After(nowFunc()), nil
}

// purge drops expired entries; must be called with the lock held.
func (s *MemoryStore) purge() {
	now := nowFunc()
	for id, until := range s.revoked {
		if !until.After(now) {
			delete(s.revoked, id)
		}
	}
}
