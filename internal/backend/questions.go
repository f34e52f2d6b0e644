package backend

import (
	"fmt"
	"maps"
	"strings"

	"github.com/Tedomi2525/My-project/types"
)

type questionRecord struct {
	types.Question
}

func (q *questionRecord) question() types.Question {
	out := q.Question
	out.Options = maps.Clone(q.Options)
	return out
}

func validateQuestion(in types.QuestionInput) error {
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: question content is required", ErrInvalidInput)
	}
	switch in.Difficulty {
	case "", types.DifficultyEasy, types.DifficultyMedium, types.DifficultyHard:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, in.Difficulty)
	}
	if len(in.Options) > 0 {
		if _, ok := in.Options[in.CorrectAnswer]; !ok {
			return fmt.Errorf("%w: correct answer %q is not an option", ErrInvalidInput, in.CorrectAnswer)
		}
	}
	return nil
}

func applyQuestion(q *types.Question, in types.QuestionInput) {
	q.Content = strings.TrimSpace(in.Content)
	q.QuestionType = in.QuestionType
	if q.QuestionType == "" {
		q.QuestionType = "single_choice"
	}
	q.Difficulty = in.Difficulty
	if q.Difficulty == "" {
		q.Difficulty = types.DifficultyMedium
	}
	q.Options = maps.Clone(in.Options)
	q.CorrectAnswer = in.CorrectAnswer
}

func (m *Memory) Questions() []types.Question {
	m.mu.RLock()
	defer m.mu.RUnlock()
	questions := make([]types.Question, 0, len(m.questions))
	for _, id := range sortedKeys(m.questions) {
		questions = append(questions, m.questions[id].question())
	}
	return questions
}

func (m *Memory) Question(id int) (types.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return types.Question{}, ErrNotFound
	}
	return q.question(), nil
}

func (m *Memory) CreateQuestion(createdBy int, in types.QuestionInput) (types.Question, error) {
	if err := validateQuestion(in); err != nil {
		return types.Question{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	q := &questionRecord{Question: types.Question{ID: m.nextID(), CreatedBy: createdBy}}
	applyQuestion(&q.Question, in)
	m.questions[q.ID] = q
	return q.question(), nil
}

func (m *Memory) UpdateQuestion(id int, in types.QuestionInput) (types.Question, error) {
	if err := validateQuestion(in); err != nil {
		return types.Question{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return types.Question{}, ErrNotFound
	}
	applyQuestion(&q.Question, in)
	return q.question(), nil
}

// DeleteQuestion removes a question and unlinks it from every exam.
func (m *Memory) DeleteQuestion(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return ErrNotFound
	}
	delete(m.questions, id)
	for _, exam := range m.exams {
		exam.unlink(id)
	}
	return nil
}
