package handlers

import (
	"net/http"

	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/go-chi/chi/v5"
)

// ResultHandler serves submissions and graded results.
type ResultHandler struct {
	data *backend.Memory
}

func NewResultHandler(data *backend.Memory) *ResultHandler {
	return &ResultHandler{data: data}
}

func ResultRouter(r chi.Router, data *backend.Memory) {
	handler := NewResultHandler(data)

	r.Post("/submit/{examID}/{studentID}", handler.Submit)
	r.With(staffOnly).Get("/exam/{examID}", handler.ListByExam)
	r.Get("/{resultID}/review", handler.Review)
}

// Submit grades an attempt. Students may only submit for themselves.
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	examID, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	studentID, err := parseID(r, "studentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !p.staff() && p.UserID != studentID {
		writeError(w, http.StatusForbidden, "cannot submit for another student")
		return
	}

	var req types.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.data.Submit(examID, studentID, req)
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ResultHandler) ListByExam(w http.ResponseWriter, r *http.Request) {
	examID, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	results, err := h.data.ResultsByExam(examID)
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Review returns a result breakdown to its owner or to staff. Staff always
// see correct answers.
func (h *ResultHandler) Review(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	id, err := parseID(r, "resultID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	owner, err := h.data.ResultOwner(id)
	if err != nil {
		writeStoreError(w, err, "result")
		return
	}
	if !p.staff() && owner != p.UserID {
		writeError(w, http.StatusForbidden, "not your result")
		return
	}
	review, err := h.data.Review(id, p.staff())
	if err != nil {
		writeStoreError(w, err, "result")
		return
	}
	writeJSON(w, http.StatusOK, review)
}
