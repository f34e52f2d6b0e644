package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tedomi2525/My-project/config"
	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, loginRPM int) *httptest.Server {
	t.Helper()
	srv, err := New(
		config.DevServerConfig{Port: 8000, LoginRPM: loginRPM, Secret: "test-secret"},
		WithBackendOptions(backend.WithHashCost(bcrypt.MinCost)),
		WithoutRequestLog(),
	)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func login(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	resp, body := call(t, ts, http.MethodPost, "/login", "", types.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthzIsPublic(t *testing.T) {
	ts := newTestServer(t, 0)
	resp, body := call(t, ts, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestLoginResponse(t *testing.T) {
	ts := newTestServer(t, 0)

	resp, body := call(t, ts, http.MethodPost, "/login", "", types.LoginRequest{Username: "student", Password: "student123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, "student", body["role"])
	assert.NotEmpty(t, body["student_id"])

	resp, body = call(t, ts, http.MethodPost, "/login", "", types.LoginRequest{Username: "student", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "incorrect username or password", body["detail"])
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	ts := newTestServer(t, 0)

	for _, path := range []string{"/classes", "/exams", "/questions", "/users", "/admin/users", "/auth/me"} {
		resp, body := call(t, ts, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.NotEmpty(t, body["detail"], path)
	}

	resp, _ := call(t, ts, http.MethodGet, "/classes", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleChecks(t *testing.T) {
	ts := newTestServer(t, 0)
	student := login(t, ts, "student", "student123")
	teacher := login(t, ts, "teacher", "teacher123")
	admin := login(t, ts, "admin", "admin123")

	resp, _ := call(t, ts, http.MethodGet, "/admin/users", teacher, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, ts, http.MethodGet, "/admin/users", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, ts, http.MethodPost, "/classes", student, types.ClassInput{Name: "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body := call(t, ts, http.MethodPost, "/classes", teacher, types.ClassInput{Name: "10A"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "10A", body["name"])

	resp, _ = call(t, ts, http.MethodGet, "/questions", student, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, ts, http.MethodGet, "/exams/student-available", teacher, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMeReturnsCaller(t *testing.T) {
	ts := newTestServer(t, 0)
	token := login(t, ts, "teacher", "teacher123")

	resp, body := call(t, ts, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "teacher", body["username"])
	assert.Equal(t, "teacher", body["role"])
}

func TestLoginIsRateLimited(t *testing.T) {
	ts := newTestServer(t, 2)
	creds := types.LoginRequest{Username: "student", Password: "wrong"}

	for range 2 {
		resp, _ := call(t, ts, http.MethodPost, "/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := call(t, ts, http.MethodPost, "/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "too many login attempts", body["detail"])
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}

func TestNotFoundUsesDetail(t *testing.T) {
	ts := newTestServer(t, 0)
	token := login(t, ts, "teacher", "teacher123")

	resp, body := call(t, ts, http.MethodGet, "/exams/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "exam not found", body["detail"])
}
