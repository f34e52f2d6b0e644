package types

// Difficulty classifies how hard a question is.
type Difficulty string

// Supported difficulty levels.
const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Question is a bank question authored by a teacher.
type Question struct {
	// ID is the unique identifier of the question.
	ID int `json:"id"`

	// Content is the question text.
	Content string `json:"content"`

	// QuestionType describes the answer format, e.g. "single_choice".
	QuestionType string `json:"question_type"`

	// Difficulty is one of EASY, MEDIUM or HARD.
	Difficulty Difficulty `json:"difficulty"`

	// Options maps option keys ("A", "B", ...) to their text. Nil for
	// free-form questions.
	Options map[string]string `json:"options"`

	// CorrectAnswer is the key of the correct option.
	CorrectAnswer string `json:"correct_answer"`

	// CreatedBy identifies the authoring teacher.
	CreatedBy int `json:"created_by"`
}

// QuestionInput is the payload used to create or replace a question.
type QuestionInput struct {
	Content       string            `json:"content"`
	QuestionType  string            `json:"question_type"`
	Difficulty    Difficulty        `json:"difficulty"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer"`
}
