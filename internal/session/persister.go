package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Tedomi2525/My-project/types"
)

// Cookie settings used for persisted sessions.
const (
	TokenCookie = "token"
	UserCookie  = "user"
	CookieTTL   = 24 * time.Hour
)

// Persisted is what survives between processes: the raw token and the last
// validated identity, used only as a hint when restoring.
type Persisted struct {
	Token    string
	Identity *types.Identity
}

// Persister stores a session outside the process.
type Persister interface {
	Save(ctx context.Context, p Persisted) error
	// Load returns ErrNoCredential when nothing (or only expired data) is stored.
	Load(ctx context.Context) (Persisted, error)
	Delete(ctx context.Context) error
}

// MemoryPersister keeps the session for the lifetime of the process.
type MemoryPersister struct {
	mu    sync.Mutex
	value *Persisted
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (m *MemoryPersister) Save(_ context.Context, p Persisted) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = &p
	return nil
}

func (m *MemoryPersister) Load(_ context.Context) (Persisted, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.value == nil {
		return Persisted{}, ErrNoCredential
	}
	return *m.value, nil
}

func (m *MemoryPersister) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = nil
	return nil
}

// sessionCookies renders p as the token and user cookies, expiring ttl from now.
func sessionCookies(p Persisted, now time.Time, ttl time.Duration) ([]*http.Cookie, error) {
	expires := now.Add(ttl).UTC()
	cookies := []*http.Cookie{newCookie(TokenCookie, p.Token, expires)}
	if p.Identity != nil {
		raw, err := json.Marshal(p.Identity)
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, newCookie(UserCookie, base64.RawURLEncoding.EncodeToString(raw), expires))
	}
	return cookies, nil
}

func newCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
	}
}

func decodeIdentity(value string) (*types.Identity, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var identity types.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
