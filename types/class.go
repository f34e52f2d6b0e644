package types

import "time"

// Class is a teaching group owned by a teacher.
type Class struct {
	// ID is the unique identifier of the class.
	ID int `json:"id"`

	// Name is the human-readable class name.
	Name string `json:"name"`

	// Description is an optional free-form summary.
	Description string `json:"description,omitempty"`

	// TeacherID identifies the owning teacher.
	TeacherID int `json:"teacher_id"`

	// Students lists the members of the class. It may be omitted in list views.
	Students []StudentInClass `json:"students"`

	// StudentCount is the number of members.
	StudentCount int `json:"student_count"`
}

// StudentInClass is a class member as embedded in a Class.
type StudentInClass struct {
	ID          int       `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	StudentCode string    `json:"student_code,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

// AvailableStudent is a student that can be enrolled into a class.
type AvailableStudent struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	StudentCode string `json:"student_code,omitempty"`
}

// ClassInput is the payload used to create a class.
type ClassInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ClassUpdate is a partial class update. Nil fields are left unchanged.
type ClassUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Enrollment links a student to a class.
type Enrollment struct {
	ClassID   int `json:"class_id"`
	StudentID int `json:"student_id"`
}
