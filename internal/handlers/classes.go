package handlers

import (
	"net/http"

	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/go-chi/chi/v5"
)

// ClassHandler serves /classes.
type ClassHandler struct {
	data *backend.Memory
}

func NewClassHandler(data *backend.Memory) *ClassHandler {
	return &ClassHandler{data: data}
}

// ClassRouter registers class routes. Callers must already be authenticated.
func ClassRouter(r chi.Router, data *backend.Memory) {
	handler := NewClassHandler(data)

	r.Get("/", handler.List)
	r.With(staffOnly).Post("/", handler.Create)
	r.With(staffOnly).Post("/join", handler.Join)
	r.Route("/{classID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(staffOnly).Put("/", handler.Update)
		r.With(staffOnly).Delete("/", handler.Delete)
		r.With(staffOnly).Delete("/students/{studentID}", handler.RemoveStudent)
	})
}

func (h *ClassHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.data.Classes())
}

func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "classID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	class, err := h.data.Class(id)
	if err != nil {
		writeStoreError(w, err, "class")
		return
	}
	writeJSON(w, http.StatusOK, class)
}

func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	var in types.ClassInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	class, err := h.data.CreateClass(p.UserID, in)
	if err != nil {
		writeStoreError(w, err, "class")
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "classID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in types.ClassUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	class, err := h.data.UpdateClass(id, in)
	if err != nil {
		writeStoreError(w, err, "class")
		return
	}
	writeJSON(w, http.StatusOK, class)
}

func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "classID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.data.DeleteClass(id); err != nil {
		writeStoreError(w, err, "class")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClassHandler) Join(w http.ResponseWriter, r *http.Request) {
	var in types.Enrollment
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.data.Enroll(in.ClassID, in.StudentID); err != nil {
		writeStoreError(w, err, "class")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "student added"})
}

func (h *ClassHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	classID, err := parseID(r, "classID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	studentID, err := parseID(r, "studentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.data.Unenroll(classID, studentID); err != nil {
		writeStoreError(w, err, "student")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
