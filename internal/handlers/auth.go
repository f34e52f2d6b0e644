package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Tedomi2525/My-project/internal/auth"
	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/go-chi/chi/v5"
)

const defaultTokenTTL = 24 * time.Hour

// AuthHandler provides the login and current-user endpoints.
type AuthHandler struct {
	data     *backend.Memory
	secret   string
	tokenTTL time.Duration
}

func NewAuthHandler(data *backend.Memory, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		data:     data,
		secret:   jwtSecret,
		tokenTTL: defaultTokenTTL,
	}
}

// AuthRouter registers /login and /auth/me. limiter may be nil.
func AuthRouter(r chi.Router, data *backend.Memory, jwtSecret string, limiter *LoginLimiter) {
	handler := NewAuthHandler(data, jwtSecret)

	if limiter != nil {
		r.With(limiter.Handler).Post("/login", handler.Login)
	} else {
		r.Post("/login", handler.Login)
	}
	r.With(RequireAuth(data, jwtSecret)).Get("/auth/me", handler.Me)
}

// RequireAuth verifies the bearer token and injects the caller into the
// request context. The role is read from the account, not the token, so
// role changes apply immediately.
func RequireAuth(data *backend.Memory, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			cred, err := auth.DecodeClaims(token, jwtSecret, time.Now())
			if err != nil || cred.UserID < 1 {
				writeError(w, http.StatusUnauthorized, "could not validate credentials")
				return
			}

			user, err := data.User(cred.UserID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), contextPrincipalKey, Principal{UserID: user.ID, Role: user.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Login verifies credentials and returns a JWT with the account profile.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := h.data.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	token, err := auth.IssueToken(h.secret, user.ID, user.Role, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	resp := types.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		FullName:    user.FullName,
		Role:        user.Role.String(),
	}
	if user.Email != "" {
		resp.Email = &user.Email
	}
	if user.StudentCode != "" {
		resp.StudentID = &user.StudentCode
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.data.User(p.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
