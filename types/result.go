package types

import "time"

// ExamResult is the graded outcome of one student's attempt.
type ExamResult struct {
	ID          int        `json:"id"`
	ExamID      int        `json:"exam_id"`
	StudentID   int        `json:"student_id"`
	StudentName string     `json:"student_name,omitempty"`
	StudentCode string     `json:"student_code,omitempty"`
	TotalScore  float64    `json:"total_score"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
}

// Answer is a student's selected option for one question.
type Answer struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// SubmitRequest is the bulk answer submission for an exam.
type SubmitRequest struct {
	StartedAt *time.Time `json:"started_at,omitempty"`
	Answers   []Answer   `json:"answers"`
}

// ResultReview is the per-question breakdown of a graded attempt.
type ResultReview struct {
	ResultID         int                    `json:"result_id"`
	ExamID           int                    `json:"exam_id"`
	ExamTitle        string                 `json:"exam_title"`
	StudentID        int                    `json:"student_id"`
	TotalScore       float64                `json:"total_score"`
	StartedAt        *time.Time             `json:"started_at"`
	FinishedAt       *time.Time             `json:"finished_at"`
	AllowViewAnswers bool                   `json:"allow_view_answers"`
	Questions        []ResultReviewQuestion `json:"questions"`
}

// ResultReviewQuestion is one reviewed question. CorrectAnswer is empty
// unless the exam allows viewing answers.
type ResultReviewQuestion struct {
	QuestionID    int               `json:"question_id"`
	Content       string            `json:"content"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer"`
	StudentAnswer string            `json:"student_answer"`
	IsCorrect     bool              `json:"is_correct"`
}
