package services

import (
	"context"
	"fmt"

	"github.com/Tedomi2525/My-project/types"
)

// ResultRepository defines backend operations for exam results.
type ResultRepository interface {
	Submit(ctx context.Context, examID, studentID int, req types.SubmitRequest) (types.ExamResult, error)
	ListByExam(ctx context.Context, examID int) ([]types.ExamResult, error)
	Review(ctx context.Context, resultID int) (types.ResultReview, error)
}

// ResultService caches the results of the last listed exam.
type ResultService struct {
	repo  ResultRepository
	cache listCache[types.ExamResult]
}

func NewResultService(repo ResultRepository) *ResultService {
	return &ResultService{repo: repo}
}

func (s *ResultService) Items() []types.ExamResult { return s.cache.snapshot() }

func (s *ResultService) Loading() bool { return s.cache.isLoading() }

// Submit grades a student's answers. Students cannot list results, so the
// cache is not reloaded here.
func (s *ResultService) Submit(ctx context.Context, examID, studentID int, req types.SubmitRequest) (types.ExamResult, error) {
	result, err := s.repo.Submit(ctx, examID, studentID, req)
	if err != nil {
		return types.ExamResult{}, fmt.Errorf("submit exam %d: %w", examID, err)
	}
	return result, nil
}

func (s *ResultService) ListByExam(ctx context.Context, examID int) ([]types.ExamResult, error) {
	return s.cache.load(ctx, fmt.Sprintf("results of exam %d", examID), func(ctx context.Context) ([]types.ExamResult, error) {
		return s.repo.ListByExam(ctx, examID)
	})
}

func (s *ResultService) Review(ctx context.Context, resultID int) (types.ResultReview, error) {
	review, err := s.repo.Review(ctx, resultID)
	if err != nil {
		return types.ResultReview{}, fmt.Errorf("review result %d: %w", resultID, err)
	}
	return review, nil
}
