package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tedomi2525/My-project/internal/session"
	"github.com/Tedomi2525/My-project/types"
)

func authedStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.New(nil)
	require.NoError(t, store.Establish(context.Background(),
		session.Credential{Token: "tok-123", UserID: 7, Role: types.RoleAdmin},
		types.Identity{ID: 7, Username: "admin", Role: types.RoleAdmin},
	))
	return store
}

func TestDoWithoutIdentityNeverHitsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, session.New(nil))
	err := client.Do(context.Background(), http.MethodGet, "/classes", nil, nil)

	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, int32(0), hits.Load())
}

func TestDoAttachesBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("x-user-id"))
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in types.ClassInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.Class{ID: 3, Name: in.Name})
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL+"/", authedStore(t))
	var out types.Class
	require.NoError(t, client.Do(context.Background(), http.MethodPost, "classes", types.ClassInput{Name: "10A1"}, &out))
	assert.Equal(t, types.Class{ID: 3, Name: "10A1"}, out)
}

func TestErrorDecoding(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
		target  error
	}{
		{"detail string", http.StatusNotFound, `{"detail":"Class not found"}`, "Class not found", ErrNotFound},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"value is not a valid email"}]}`, "field required, value is not a valid email", nil},
		{"error field", http.StatusUnauthorized, `{"error":"unauthorized"}`, "unauthorized", ErrUnauthorized},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP 502: Bad Gateway", nil},
		{"forbidden", http.StatusForbidden, `{"detail":"admins only"}`, "admins only", ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			err := New(srv.URL, authedStore(t)).Do(context.Background(), http.MethodGet, "/x", nil, nil)
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.message, apiErr.Error())
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
			}
		})
	}
}

func TestDoPublicSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	var out map[string]any
	require.NoError(t, New(srv.URL, authedStore(t)).DoPublic(context.Background(), http.MethodPost, "/login", map[string]string{}, &out))
	assert.Nil(t, out)
}

func TestTimeoutAndUnreachable(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(slow.Close)

	err := New(slow.URL, authedStore(t), WithTimeout(50*time.Millisecond)).Do(context.Background(), http.MethodGet, "/slow", nil, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()
	err = New(url, authedStore(t)).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach backend")
}
