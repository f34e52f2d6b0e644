package handlers

import (
	"net/http"

	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/go-chi/chi/v5"
)

// UserHandler serves both /users and /admin/users.
type UserHandler struct {
	data *backend.Memory
}

func NewUserHandler(data *backend.Memory) *UserHandler {
	return &UserHandler{data: data}
}

// UserRouter registers /users: reads for any caller, writes for admins.
func UserRouter(r chi.Router, data *backend.Memory) {
	handler := NewUserHandler(data)

	r.Get("/", handler.List)
	r.With(adminOnly).Post("/", handler.Create)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(adminOnly).Put("/", handler.Update)
		r.With(adminOnly).Delete("/", handler.Delete)
	})
}

// AdminUserRouter registers /admin/users, admin-only throughout.
func AdminUserRouter(r chi.Router, data *backend.Memory) {
	handler := NewUserHandler(data)

	r.Use(adminOnly)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
		r.Post("/reset-password", handler.ResetPassword)
	})
}

func (h *UserHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.data.Users())
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.data.User(id)
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in types.UserCreate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.data.CreateUser(in)
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in types.UserUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.data.UpdateUser(id, in)
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete refuses to remove the caller's own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	id, err := parseID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if id == p.UserID {
		writeError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}
	if err := h.data.DeleteUser(id); err != nil {
		writeStoreError(w, err, "user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	password, err := h.data.ResetPassword(id)
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, types.PasswordReset{Message: "password reset", NewPassword: password})
}
