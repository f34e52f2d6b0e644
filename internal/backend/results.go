package backend

import (
	"fmt"
	"time"

	"github.com/Tedomi2525/My-project/types"
)

type resultRecord struct {
	id         int
	examID     int
	studentID  int
	score      float64
	startedAt  time.Time
	finishedAt time.Time
	answers    map[int]string
}

func (m *Memory) resultLocked(r *resultRecord) types.ExamResult {
	started, finished := r.startedAt, r.finishedAt
	res := types.ExamResult{
		ID:         r.id,
		ExamID:     r.examID,
		StudentID:  r.studentID,
		TotalScore: r.score,
		StartedAt:  &started,
		FinishedAt: &finished,
	}
	if acc, ok := m.accounts[r.studentID]; ok {
		res.StudentName = acc.fullName
		res.StudentCode = acc.studentCode
	}
	return res
}

// Submit grades a set of answers against the exam's linked questions. Each
// correct answer earns the point of its link; answers to questions outside
// the exam earn nothing.
func (m *Memory) Submit(examID, studentID int, req types.SubmitRequest) (types.ExamResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.exams[examID]
	if !ok {
		return types.ExamResult{}, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}
	acc, ok := m.accounts[studentID]
	if !ok || acc.role != "student" {
		return types.ExamResult{}, fmt.Errorf("student %d: %w", studentID, ErrNotFound)
	}

	now := m.now().UTC()
	if e.status(now) == types.ExamEnded {
		return types.ExamResult{}, fmt.Errorf("%w: exam %d has ended", ErrInvalidInput, examID)
	}

	r := &resultRecord{
		id:         m.nextID(),
		examID:     examID,
		studentID:  studentID,
		startedAt:  now,
		finishedAt: now,
		answers:    map[int]string{},
	}
	if req.StartedAt != nil {
		r.startedAt = req.StartedAt.UTC()
	}
	for _, ans := range req.Answers {
		r.answers[ans.QuestionID] = ans.SelectedOption
		point, linked := e.points[ans.QuestionID]
		q, exists := m.questions[ans.QuestionID]
		if linked && exists && q.CorrectAnswer == ans.SelectedOption {
			r.score += point
		}
	}
	m.results[r.id] = r
	return m.resultLocked(r), nil
}

func (m *Memory) ResultsByExam(examID int) ([]types.ExamResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.exams[examID]; !ok {
		return nil, ErrNotFound
	}
	results := []types.ExamResult{}
	for _, id := range sortedKeys(m.results) {
		if r := m.results[id]; r.examID == examID {
			results = append(results, m.resultLocked(r))
		}
	}
	return results, nil
}

// ResultOwner returns the student a result belongs to.
func (m *Memory) ResultOwner(resultID int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[resultID]
	if !ok {
		return 0, ErrNotFound
	}
	return r.studentID, nil
}

// Review returns the per-question breakdown of a result. Correct answers
// are included only when the exam allows viewing them or reveal is set.
func (m *Memory) Review(resultID int, reveal bool) (types.ResultReview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[resultID]
	if !ok {
		return types.ResultReview{}, ErrNotFound
	}
	e, ok := m.exams[r.examID]
	if !ok {
		return types.ResultReview{}, ErrNotFound
	}

	started, finished := r.startedAt, r.finishedAt
	review := types.ResultReview{
		ResultID:         r.id,
		ExamID:           e.id,
		ExamTitle:        e.title,
		StudentID:        r.studentID,
		TotalScore:       r.score,
		StartedAt:        &started,
		FinishedAt:       &finished,
		AllowViewAnswers: e.allowViewAnswers,
		Questions:        []types.ResultReviewQuestion{},
	}
	show := reveal || e.allowViewAnswers
	for _, qid := range e.questions {
		q, ok := m.questions[qid]
		if !ok {
			continue
		}
		answer := r.answers[qid]
		item := types.ResultReviewQuestion{
			QuestionID:    qid,
			Content:       q.Content,
			Options:       q.question().Options,
			StudentAnswer: answer,
			IsCorrect:     answer != "" && answer == q.CorrectAnswer,
		}
		if show {
			item.CorrectAnswer = q.CorrectAnswer
		}
		review.Questions = append(review.Questions, item)
	}
	return review, nil
}
