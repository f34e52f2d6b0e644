package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tedomi2525/My-project/types"
)

const examsPath = "/exams"

// ExamRepository handles the exams collection and its question links.
type ExamRepository struct {
	api Requester
}

func NewExamRepository(api Requester) *ExamRepository {
	return &ExamRepository{api: api}
}

func (r *ExamRepository) List(ctx context.Context) ([]types.Exam, error) {
	var exams []types.Exam
	if err := r.api.Do(ctx, http.MethodGet, examsPath, nil, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *ExamRepository) Get(ctx context.Context, id int) (types.Exam, error) {
	var exam types.Exam
	if err := r.api.Do(ctx, http.MethodGet, itemPath(examsPath, id), nil, &exam); err != nil {
		return types.Exam{}, err
	}
	return exam, nil
}

func (r *ExamRepository) Create(ctx context.Context, in types.ExamCreate) (types.Exam, error) {
	var exam types.Exam
	if err := r.api.Do(ctx, http.MethodPost, examsPath, in, &exam); err != nil {
		return types.Exam{}, err
	}
	return exam, nil
}

func (r *ExamRepository) Update(ctx context.Context, id int, in types.ExamUpdate) (types.Exam, error) {
	var exam types.Exam
	if err := r.api.Do(ctx, http.MethodPut, itemPath(examsPath, id), in, &exam); err != nil {
		return types.Exam{}, err
	}
	return exam, nil
}

func (r *ExamRepository) Delete(ctx context.Context, id int) error {
	return r.api.Do(ctx, http.MethodDelete, itemPath(examsPath, id), nil, nil)
}

func (r *ExamRepository) AddQuestion(ctx context.Context, link types.ExamQuestionLink) error {
	path := fmt.Sprintf("%s/%d/questions", examsPath, link.ExamID)
	return r.api.Do(ctx, http.MethodPost, path, link, nil)
}

func (r *ExamRepository) RemoveQuestion(ctx context.Context, examID, questionID int) error {
	path := fmt.Sprintf("%s/%d/questions/%d", examsPath, examID, questionID)
	return r.api.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Questions returns the full questions attached to an exam.
func (r *ExamRepository) Questions(ctx context.Context, examID int) ([]types.Question, error) {
	var questions []types.Question
	path := fmt.Sprintf("%s/%d/questions", examsPath, examID)
	if err := r.api.Do(ctx, http.MethodGet, path, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Available returns the exams the current student may take.
func (r *ExamRepository) Available(ctx context.Context) ([]types.Exam, error) {
	var exams []types.Exam
	if err := r.api.Do(ctx, http.MethodGet, examsPath+"/student-available", nil, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// VerifyPassword checks an exam password against the backend.
func (r *ExamRepository) VerifyPassword(ctx context.Context, examID int, password string) (bool, error) {
	var check types.PasswordCheck
	path := fmt.Sprintf("%s/%d/verify-password", examsPath, examID)
	body := map[string]string{"password": password}
	if err := r.api.Do(ctx, http.MethodPost, path, body, &check); err != nil {
		return false, err
	}
	return check.Success, nil
}
