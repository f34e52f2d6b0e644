package handlers

import (
	"net/http"

	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/go-chi/chi/v5"
)

// QuestionHandler serves the question bank. Every route is staff-only
// since questions carry their correct answers.
type QuestionHandler struct {
	data *backend.Memory
}

func NewQuestionHandler(data *backend.Memory) *QuestionHandler {
	return &QuestionHandler{data: data}
}

func QuestionRouter(r chi.Router, data *backend.Memory) {
	handler := NewQuestionHandler(data)

	r.Use(staffOnly)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{questionID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

func (h *QuestionHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.data.Questions())
}

func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "questionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q, err := h.data.Question(id)
	if err != nil {
		writeStoreError(w, err, "question")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	var in types.QuestionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q, err := h.data.CreateQuestion(p.UserID, in)
	if err != nil {
		writeStoreError(w, err, "question")
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "questionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in types.QuestionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q, err := h.data.UpdateQuestion(id, in)
	if err != nil {
		writeStoreError(w, err, "question")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "questionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.data.DeleteQuestion(id); err != nil {
		writeStoreError(w, err, "question")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
