package handlers

import (
	"net/http"

	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/types"
	"github.com/go-chi/chi/v5"
)

// ExamHandler serves /exams and the exam-question links.
type ExamHandler struct {
	data *backend.Memory
}

func NewExamHandler(data *backend.Memory) *ExamHandler {
	return &ExamHandler{data: data}
}

func ExamRouter(r chi.Router, data *backend.Memory) {
	handler := NewExamHandler(data)

	r.Get("/", handler.List)
	r.With(staffOnly).Post("/", handler.Create)
	r.With(requireRole(types.RoleStudent)).Get("/student-available", handler.Available)
	r.Route("/{examID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(staffOnly).Put("/", handler.Update)
		r.With(staffOnly).Delete("/", handler.Delete)
		r.Get("/questions", handler.Questions)
		r.With(staffOnly).Post("/questions", handler.AddQuestion)
		r.With(staffOnly).Delete("/questions/{questionID}", handler.RemoveQuestion)
		r.Post("/verify-password", handler.VerifyPassword)
	})
}

func (h *ExamHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.data.Exams())
}

func (h *ExamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	exam, err := h.data.Exam(id)
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (h *ExamHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	var in types.ExamCreate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	exam, err := h.data.CreateExam(p.UserID, in)
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusCreated, exam)
}

func (h *ExamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in types.ExamUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	exam, err := h.data.UpdateExam(id, in)
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (h *ExamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.data.DeleteExam(id); err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Questions lists an exam's questions. Correct answers are only sent to
// staff.
func (h *ExamHandler) Questions(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	id, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	questions, err := h.data.ExamQuestions(id, p.staff())
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *ExamHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var link types.ExamQuestionLink
	if err := decodeJSON(r, &link); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.data.LinkQuestion(id, link.QuestionID, link.Point); err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	exam, err := h.data.Exam(id)
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (h *ExamHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	examID, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	questionID, err := parseID(r, "questionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.data.UnlinkQuestion(examID, questionID); err != nil {
		writeStoreError(w, err, "question")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ExamHandler) Available(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.data.AvailableFor(p.UserID))
}

type verifyPasswordRequest struct {
	Password string `json:"password"`
}

func (h *ExamHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req verifyPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ok, err := h.data.VerifyExamPassword(id, req.Password)
	if err != nil {
		writeStoreError(w, err, "exam")
		return
	}
	writeJSON(w, http.StatusOK, types.PasswordCheck{Success: ok})
}
