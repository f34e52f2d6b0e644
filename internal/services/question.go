package services

import (
	"context"
	"fmt"

	"github.com/Tedomi2525/My-project/types"
)

// QuestionRepository defines backend operations for the question bank.
type QuestionRepository interface {
	List(ctx context.Context) ([]types.Question, error)
	Get(ctx context.Context, id int) (types.Question, error)
	Create(ctx context.Context, in types.QuestionInput) (types.Question, error)
	Update(ctx context.Context, id int, in types.QuestionInput) (types.Question, error)
	Delete(ctx context.Context, id int) error
}

type QuestionService struct {
	repo  QuestionRepository
	cache listCache[types.Question]
}

func NewQuestionService(repo QuestionRepository) *QuestionService {
	return &QuestionService{repo: repo}
}

func (s *QuestionService) Items() []types.Question { return s.cache.snapshot() }

func (s *QuestionService) Loading() bool { return s.cache.isLoading() }

func (s *QuestionService) List(ctx context.Context) ([]types.Question, error) {
	return s.cache.load(ctx, "questions", s.repo.List)
}

func (s *QuestionService) Get(ctx context.Context, id int) (types.Question, error) {
	question, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return question, nil
}

func (s *QuestionService) Create(ctx context.Context, in types.QuestionInput) (types.Question, error) {
	question, err := s.repo.Create(ctx, in)
	if err != nil {
		return types.Question{}, fmt.Errorf("create question: %w", err)
	}
	return question, s.refresh(ctx)
}

func (s *QuestionService) Update(ctx context.Context, id int, in types.QuestionInput) (types.Question, error) {
	question, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return types.Question{}, fmt.Errorf("update question %d: %w", id, err)
	}
	return question, s.refresh(ctx)
}

func (s *QuestionService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return s.refresh(ctx)
}

func (s *QuestionService) refresh(ctx context.Context) error {
	return refreshAfter(ctx, &s.cache, "questions", s.repo.List)
}
