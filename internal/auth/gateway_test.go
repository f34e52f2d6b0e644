package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Tedomi2525/My-project/config"
	"github.com/Tedomi2525/My-project/internal/api"
	"github.com/Tedomi2525/My-project/internal/auth"
	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/internal/guard"
	"github.com/Tedomi2525/My-project/internal/server"
	"github.com/Tedomi2525/My-project/internal/session"
	"github.com/Tedomi2525/My-project/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const devSecret = "gateway-test-secret"

type harness struct {
	url       string
	hits      atomic.Int32
	meHits    atomic.Int32
	persister *session.MemoryPersister
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv, err := server.New(
		config.DevServerConfig{Port: 8000, LoginRPM: 1000, Secret: devSecret},
		server.WithBackendOptions(backend.WithHashCost(bcrypt.MinCost)),
		server.WithoutRequestLog(),
	)
	require.NoError(t, err)

	h := &harness{persister: session.NewMemoryPersister()}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.hits.Add(1)
		if r.URL.Path == "/auth/me" {
			h.meHits.Add(1)
		}
		srv.Router().ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	h.url = ts.URL
	return h
}

type client struct {
	store   *session.Store
	router  *guard.Router
	gateway *auth.Gateway
}

// client builds a fresh process view over the shared persister, as a new
// CLI invocation would.
func (h *harness) client(opts ...auth.Option) *client {
	store := session.New(h.persister)
	router := guard.NewRouter(store, nil)
	transport := api.New(h.url, store)
	return &client{
		store:   store,
		router:  router,
		gateway: auth.NewGateway(store, transport, router, opts...),
	}
}

func TestLoginTeacher(t *testing.T) {
	h := newHarness(t)
	c := h.client()

	id, err := c.gateway.Login(context.Background(), "teacher", "teacher123")
	require.NoError(t, err)
	assert.Equal(t, types.RoleTeacher, id.Role)
	assert.Equal(t, "teacher", id.Username)

	cred, ok := c.store.Credential()
	require.True(t, ok)
	assert.NotEmpty(t, cred.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), cred.ExpiresAt, time.Minute)
	assert.Equal(t, "/teacher", c.router.Current())

	persisted, err := h.persister.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cred.Token, persisted.Token)
}

func TestLoginStudentCarriesStudentCode(t *testing.T) {
	h := newHarness(t)
	c := h.client()

	id, err := c.gateway.Login(context.Background(), "student", "student123")
	require.NoError(t, err)
	assert.NotEmpty(t, id.StudentCode)
	assert.Equal(t, "/student", c.router.Current())
}

func TestLoginInvalidLeavesSessionUntouched(t *testing.T) {
	h := newHarness(t)
	c := h.client()

	_, err := c.gateway.Login(context.Background(), "teacher", "wrong")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	assert.False(t, c.store.Authenticated())
	_, ok := c.store.Credential()
	assert.False(t, ok)
	assert.Empty(t, c.router.History())
}

func TestLoginMissingCredentialsSkipsNetwork(t *testing.T) {
	h := newHarness(t)
	c := h.client()

	for _, pair := range [][2]string{{"", "x"}, {"teacher", ""}, {"   ", "x"}} {
		_, err := c.gateway.Login(context.Background(), pair[0], pair[1])
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	}
	assert.Equal(t, int32(0), h.hits.Load())
}

func TestLogoutIsIdempotent(t *testing.T) {
	h := newHarness(t)
	c := h.client()

	_, err := c.gateway.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	c.gateway.Logout(context.Background())
	c.gateway.Logout(context.Background())

	assert.False(t, c.store.Authenticated())
	assert.Equal(t, guard.LoginPath, c.router.Current())
	_, err = h.persister.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNoCredential)
}

func TestRestoreUsesMatchingSnapshot(t *testing.T) {
	h := newHarness(t)
	first := h.client()
	want, err := first.gateway.Login(context.Background(), "teacher", "teacher123")
	require.NoError(t, err)

	second := h.client()
	assert.False(t, second.store.Authenticated())
	require.NoError(t, second.gateway.RestoreSession(context.Background()))

	got, ok := second.store.Identity()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, int32(0), h.meHits.Load())
}

func TestRestoreWithoutSnapshotAsksBackend(t *testing.T) {
	h := newHarness(t)
	first := h.client()
	_, err := first.gateway.Login(context.Background(), "student", "student123")
	require.NoError(t, err)
	cred, _ := first.store.Credential()
	require.NoError(t, h.persister.Save(context.Background(), session.Persisted{Token: cred.Token}))

	second := h.client(auth.WithSecret(devSecret))
	require.NoError(t, second.gateway.RestoreSession(context.Background()))

	got, ok := second.store.Identity()
	require.True(t, ok)
	assert.Equal(t, types.RoleStudent, got.Role)
	assert.Equal(t, int32(1), h.meHits.Load())
}

func TestRestoreRejectsBadCredentials(t *testing.T) {
	expired, err := auth.IssueToken(devSecret, 2, types.RoleTeacher, -time.Minute)
	require.NoError(t, err)
	forged, err := auth.IssueToken("someone-else", 2, types.RoleTeacher, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"expired", expired, ""},
		{"forged with secret", forged, devSecret},
		{"forged without secret", forged, ""},
		{"opaque", "opaque-token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.persister.Save(context.Background(), session.Persisted{Token: tt.token}))

			c := h.client(auth.WithSecret(tt.secret))
			err := c.gateway.RestoreSession(context.Background())
			require.ErrorIs(t, err, auth.ErrSessionExpired)

			assert.False(t, c.store.Authenticated())
			_, ok := c.store.Credential()
			assert.False(t, ok)
			assert.Equal(t, guard.LoginPath, c.router.Current())
			_, err = h.persister.Load(context.Background())
			assert.ErrorIs(t, err, session.ErrNoCredential)
		})
	}
}

func TestRestoreWithoutCredentialIsNoop(t *testing.T) {
	h := newHarness(t)
	c := h.client()

	require.NoError(t, c.gateway.RestoreSession(context.Background()))
	assert.False(t, c.store.Authenticated())
	assert.Empty(t, c.router.History())
	assert.Equal(t, int32(0), h.hits.Load())
}
