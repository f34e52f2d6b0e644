package types

import "time"

// ExamStatus is the lifecycle state of an exam.
type ExamStatus string

// Supported exam states.
const (
	ExamDraft  ExamStatus = "draft"
	ExamActive ExamStatus = "active"
	ExamEnded  ExamStatus = "ended"
)

// Exam is a timed set of questions offered to one or more classes.
type Exam struct {
	// ID is the unique identifier of the exam.
	ID int `json:"id"`

	// Title is the human-readable exam name.
	Title string `json:"title"`

	// Description is an optional summary shown to students.
	Description *string `json:"description,omitempty"`

	// DurationMinutes is the time a student has once the exam is started.
	DurationMinutes int `json:"duration_minutes"`

	// StartTime and EndTime bound the window in which the exam can be taken.
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	// AllowViewAnswers lets students review correct answers after submitting.
	AllowViewAnswers bool `json:"allow_view_answers"`

	// CreatedBy identifies the owning teacher.
	CreatedBy int `json:"created_by"`

	// HasPassword reports whether a password is required to start the exam.
	HasPassword bool `json:"has_password"`

	// AllowedClasses lists the ids of the classes that may take the exam.
	AllowedClasses []int `json:"allowed_classes"`

	// Questions lists the ids of the questions in the exam.
	Questions []int `json:"questions"`

	// Status is the lifecycle state, when reported by the backend.
	Status ExamStatus `json:"status,omitempty"`
}

// ExamCreate is the payload used to create an exam.
type ExamCreate struct {
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	DurationMinutes  int        `json:"duration_minutes"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	CreatedBy        int        `json:"created_by"`
	Password         string     `json:"password,omitempty"`
	AllowViewAnswers bool       `json:"allow_view_answers"`
	ClassIDs         []int      `json:"class_ids,omitempty"`
	Questions        []int      `json:"questions,omitempty"`
}

// ExamUpdate is a partial exam update. Nil fields are left unchanged; a
// non-nil empty slice clears the association.
type ExamUpdate struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	DurationMinutes  *int       `json:"duration_minutes,omitempty"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	Password         *string    `json:"password,omitempty"`
	AllowViewAnswers *bool      `json:"allow_view_answers,omitempty"`
	ClassIDs         []int      `json:"class_ids,omitempty"`
	Questions        []int      `json:"questions,omitempty"`
}

// ExamQuestionLink attaches a question to an exam with a point value.
type ExamQuestionLink struct {
	ExamID     int     `json:"exam_id"`
	QuestionID int     `json:"question_id"`
	Point      float64 `json:"point,omitempty"`
}

// PasswordCheck is the answer of the verify-password endpoint.
type PasswordCheck struct {
	Success bool `json:"success"`
}
