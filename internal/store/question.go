package store

import (
	"context"
	"net/http"

	"github.com/Tedomi2525/My-project/types"
)

const questionsPath = "/questions"

// QuestionRepository handles the question bank.
type QuestionRepository struct {
	api Requester
}

func NewQuestionRepository(api Requester) *QuestionRepository {
	return &QuestionRepository{api: api}
}

func (r *QuestionRepository) List(ctx context.Context) ([]types.Question, error) {
	var questions []types.Question
	if err := r.api.Do(ctx, http.MethodGet, questionsPath, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) Get(ctx context.Context, id int) (types.Question, error) {
	var question types.Question
	if err := r.api.Do(ctx, http.MethodGet, itemPath(questionsPath, id), nil, &question); err != nil {
		return types.Question{}, err
	}
	return question, nil
}

func (r *QuestionRepository) Create(ctx context.Context, in types.QuestionInput) (types.Question, error) {
	var question types.Question
	if err := r.api.Do(ctx, http.MethodPost, questionsPath, in, &question); err != nil {
		return types.Question{}, err
	}
	return question, nil
}

func (r *QuestionRepository) Update(ctx context.Context, id int, in types.QuestionInput) (types.Question, error) {
	var question types.Question
	if err := r.api.Do(ctx, http.MethodPut, itemPath(questionsPath, id), in, &question); err != nil {
		return types.Question{}, err
	}
	return question, nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	return r.api.Do(ctx, http.MethodDelete, itemPath(questionsPath, id), nil, nil)
}
