package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const contextPrincipalKey contextKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID int
	Role   types.Role
}

func (p Principal) staff() bool {
	return p.Role == types.RoleAdmin || p.Role == types.RoleTeacher
}

func principalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextPrincipalKey).(Principal)
	return p, ok && p.UserID > 0
}

// ErrorResponse is the error payload. Detail matches what FastAPI emits.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Detail: message})
}

// writeStoreError maps a backend error to a status code.
func writeStoreError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMessage(err, what))
	case errors.Is(err, backend.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, backend.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "failed to process "+what)
	}
}

func notFoundMessage(err error, what string) string {
	if errors.Is(err, backend.ErrNotFound) && err != backend.ErrNotFound {
		return err.Error()
	}
	return what + " not found"
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func parseID(r *http.Request, param string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}

// requireRole rejects principals whose role is not listed.
func requireRole(roles ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := principalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if !slices.Contains(roles, p.Role) {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var staffOnly = requireRole(types.RoleAdmin, types.RoleTeacher)

var adminOnly = requireRole(types.RoleAdmin)

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
