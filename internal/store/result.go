package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tedomi2525/My-project/types"
)

const resultsPath = "/results"

// ResultRepository handles exam submissions and graded results.
type ResultRepository struct {
	api Requester
}

func NewResultRepository(api Requester) *ResultRepository {
	return &ResultRepository{api: api}
}

func (r *ResultRepository) Submit(ctx context.Context, examID, studentID int, req types.SubmitRequest) (types.ExamResult, error) {
	var result types.ExamResult
	path := fmt.Sprintf("%s/submit/%d/%d", resultsPath, examID, studentID)
	if err := r.api.Do(ctx, http.MethodPost, path, req, &result); err != nil {
		return types.ExamResult{}, err
	}
	return result, nil
}

func (r *ResultRepository) ListByExam(ctx context.Context, examID int) ([]types.ExamResult, error) {
	var results []types.ExamResult
	path := fmt.Sprintf("%s/exam/%d", resultsPath, examID)
	if err := r.api.Do(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultRepository) Review(ctx context.Context, resultID int) (types.ResultReview, error) {
	var review types.ResultReview
	path := fmt.Sprintf("%s/%d/review", resultsPath, resultID)
	if err := r.api.Do(ctx, http.MethodGet, path, nil, &review); err != nil {
		return types.ResultReview{}, err
	}
	return review, nil
}
