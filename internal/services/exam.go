package services

import (
	"context"
	"fmt"

	"github.com/Tedomi2525/My-project/types"
)

// ExamRepository defines backend operations for exams.
type ExamRepository interface {
	List(ctx context.Context) ([]types.Exam, error)
	Get(ctx context.Context, id int) (types.Exam, error)
	Create(ctx context.Context, in types.ExamCreate) (types.Exam, error)
	Update(ctx context.Context, id int, in types.ExamUpdate) (types.Exam, error)
	Delete(ctx context.Context, id int) error
	AddQuestion(ctx context.Context, link types.ExamQuestionLink) error
	RemoveQuestion(ctx context.Context, examID, questionID int) error
	Questions(ctx context.Context, examID int) ([]types.Question, error)
	Available(ctx context.Context) ([]types.Exam, error)
	VerifyPassword(ctx context.Context, examID int, password string) (bool, error)
}

// ExamService encapsulates exam use-cases.
type ExamService struct {
	repo  ExamRepository
	cache listCache[types.Exam]
}

func NewExamService(repo ExamRepository) *ExamService {
	return &ExamService{repo: repo}
}

func (s *ExamService) Items() []types.Exam { return s.cache.snapshot() }

func (s *ExamService) Loading() bool { return s.cache.isLoading() }

func (s *ExamService) List(ctx context.Context) ([]types.Exam, error) {
	return s.cache.load(ctx, "exams", s.repo.List)
}

func (s *ExamService) Get(ctx context.Context, id int) (types.Exam, error) {
	exam, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Exam{}, fmt.Errorf("get exam %d: %w", id, err)
	}
	return exam, nil
}

func (s *ExamService) Create(ctx context.Context, in types.ExamCreate) (types.Exam, error) {
	exam, err := s.repo.Create(ctx, in)
	if err != nil {
		return types.Exam{}, fmt.Errorf("create exam: %w", err)
	}
	return exam, s.refresh(ctx)
}

func (s *ExamService) Update(ctx context.Context, id int, in types.ExamUpdate) (types.Exam, error) {
	exam, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return types.Exam{}, fmt.Errorf("update exam %d: %w", id, err)
	}
	return exam, s.refresh(ctx)
}

func (s *ExamService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete exam %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// AddQuestion attaches a question worth point to an exam.
func (s *ExamService) AddQuestion(ctx context.Context, examID, questionID int, point float64) error {
	link := types.ExamQuestionLink{ExamID: examID, QuestionID: questionID, Point: point}
	if err := s.repo.AddQuestion(ctx, link); err != nil {
		return fmt.Errorf("add question %d to exam %d: %w", questionID, examID, err)
	}
	return s.refresh(ctx)
}

func (s *ExamService) RemoveQuestion(ctx context.Context, examID, questionID int) error {
	if err := s.repo.RemoveQuestion(ctx, examID, questionID); err != nil {
		return fmt.Errorf("remove question %d from exam %d: %w", questionID, examID, err)
	}
	return s.refresh(ctx)
}

func (s *ExamService) Questions(ctx context.Context, examID int) ([]types.Question, error) {
	questions, err := s.repo.Questions(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list questions of exam %d: %w", examID, err)
	}
	return questions, nil
}

// Available lists the exams open to the current student.
func (s *ExamService) Available(ctx context.Context) ([]types.Exam, error) {
	exams, err := s.repo.Available(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available exams: %w", err)
	}
	return exams, nil
}

func (s *ExamService) VerifyPassword(ctx context.Context, examID int, password string) (bool, error) {
	ok, err := s.repo.VerifyPassword(ctx, examID, password)
	if err != nil {
		return false, fmt.Errorf("verify password of exam %d: %w", examID, err)
	}
	return ok, nil
}

func (s *ExamService) refresh(ctx context.Context) error {
	return refreshAfter(ctx, &s.cache, "exams", s.repo.List)
}
