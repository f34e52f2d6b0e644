// Package session holds the authenticated identity and its bearer credential.
//
// A single Store is created by the composition root and shared by reference
// with every component that needs the current identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Tedomi2525/My-project/types"
)

var (
	// ErrNoCredential is returned when no credential is held or persisted.
	ErrNoCredential = errors.New("no credential")
	// ErrCredentialMismatch is returned when validating a credential other
	// than the one currently held.
	ErrCredentialMismatch = errors.New("credential mismatch")
)

// Credential is the bearer token plus whatever claims were decoded from it.
type Credential struct {
	Token     string
	UserID    int
	Role      types.Role
	ExpiresAt time.Time
}

// Expired reports whether the decoded expiry is at or before now. A
// credential without a known expiry never expires client-side.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Store is the process-wide session context. The zero value is not usable;
// construct with New.
type Store struct {
	mu         sync.RWMutex
	persister  Persister
	credential *Credential
	identity   *types.Identity
	snapshot   *types.Identity
}

// New returns an empty Store backed by p. A nil persister keeps the session
// in memory only.
func New(p Persister) *Store {
	if p == nil {
		p = NewMemoryPersister()
	}
	return &Store{persister: p}
}

// Identity returns the authenticated identity, if any.
func (s *Store) Identity() (types.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return types.Identity{}, false
	}
	return *s.identity, true
}

// Credential returns the held credential, validated or not.
func (s *Store) Credential() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.credential == nil {
		return Credential{}, false
	}
	return *s.credential, true
}

// Authenticated reports whether an identity is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Pending returns a credential that was loaded but not yet validated, along
// with the identity snapshot persisted next to it (nil if none).
func (s *Store) Pending() (Credential, *types.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.credential == nil || s.identity != nil {
		return Credential{}, nil, false
	}
	var snap *types.Identity
	if s.snapshot != nil {
		copied := *s.snapshot
		snap = &copied
	}
	return *s.credential, snap, true
}

// Establish installs a freshly issued credential and its identity, then
// persists both. The in-memory session is set even if persisting fails.
func (s *Store) Establish(ctx context.Context, cred Credential, identity types.Identity) error {
	if err := checkPair(cred, identity); err != nil {
		return err
	}

	s.mu.Lock()
	s.credential = &cred
	s.identity = &identity
	s.snapshot = nil
	s.mu.Unlock()

	if err := s.persister.Save(ctx, Persisted{Token: cred.Token, Identity: &identity}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Load reads a persisted credential into the store. The identity stays
// absent until Validate is called. Load is a no-op when a credential is
// already held.
func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	held := s.credential != nil
	s.mu.RUnlock()
	if held {
		return nil
	}

	persisted, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(persisted.Token) == "" {
		return ErrNoCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential != nil {
		return nil
	}
	s.credential = &Credential{Token: persisted.Token}
	s.snapshot = persisted.Identity
	return nil
}

// Validate promotes the held credential to an authenticated session. cred
// must carry the same token as the held credential; its decoded claims
// replace the stored ones.
func (s *Store) Validate(ctx context.Context, cred Credential, identity types.Identity) error {
	if err := checkPair(cred, identity); err != nil {
		return err
	}

	s.mu.Lock()
	if s.credential == nil {
		s.mu.Unlock()
		return ErrNoCredential
	}
	if s.credential.Token != cred.Token {
		s.mu.Unlock()
		return ErrCredentialMismatch
	}
	s.credential = &cred
	s.identity = &identity
	s.snapshot = nil
	s.mu.Unlock()

	if err := s.persister.Save(ctx, Persisted{Token: cred.Token, Identity: &identity}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear drops the identity and credential and removes the persisted copy.
// It is safe to call on an empty store.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.credential = nil
	s.identity = nil
	s.snapshot = nil
	s.mu.Unlock()

	if err := s.persister.Delete(ctx); err != nil {
		return fmt.Errorf("delete persisted session: %w", err)
	}
	return nil
}

func checkPair(cred Credential, identity types.Identity) error {
	if strings.TrimSpace(cred.Token) == "" {
		return errors.New("empty token")
	}
	if !identity.Role.Valid() {
		return fmt.Errorf("invalid role %q", identity.Role)
	}
	return nil
}
