package types

import (
	"encoding/json"
	"strings"
)

// Role is the authorization role of an account. Every protected route
// belongs to exactly one role's namespace.
type Role string

// Supported roles.
const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Roles lists every valid role in namespace order.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

// ParseRole converts a raw role string into a Role. Matching is
// case-insensitive because the backend reports roles as "Admin" or "Teacher".
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", false
	}
	return role, true
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// Home returns the landing route of the role, e.g. "/teacher".
func (r Role) Home() string {
	return "/" + string(r)
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalJSON lowercases the wire value so "Teacher" decodes to
// RoleTeacher. Unknown values are kept and fail Valid.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Role(strings.ToLower(strings.TrimSpace(raw)))
	return nil
}

// Identity is the authenticated user's profile as held by the client.
type Identity struct {
	// ID is the numeric identifier of the user.
	ID int `json:"id"`

	// Username is the login name used to authenticate.
	Username string `json:"username"`

	// DisplayName is the user's full name.
	DisplayName string `json:"full_name"`

	// Email is the user's email address, when known.
	Email string `json:"email,omitempty"`

	// Role determines which route namespace the user may visit.
	Role Role `json:"role"`

	// StudentCode is the student number. Only students carry one.
	StudentCode string `json:"student_code,omitempty"`
}

// User represents an account as returned by the users endpoints.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// FullName is the user's display name.
	FullName string `json:"full_name"`

	// Email is the user's email address.
	Email string `json:"email,omitempty"`

	// Role indicates the user's authorization role.
	Role Role `json:"role"`

	// StudentCode is the student number of student accounts.
	StudentCode string `json:"student_code,omitempty"`
}

// Identity converts the account into a client-side Identity.
func (u User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		StudentCode: u.StudentCode,
	}
}

// UserCreate is the payload used to create an account.
type UserCreate struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	StudentCode string `json:"student_code,omitempty"`
}

// UserUpdate is a partial account update. Nil fields are left unchanged.
type UserUpdate struct {
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Role        *Role   `json:"role,omitempty"`
	Password    *string `json:"password,omitempty"`
	StudentCode *string `json:"student_code,omitempty"`
}

// LoginRequest carries the credentials exchanged for a bearer token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the successful login payload.
type AuthResponse struct {
	// AccessToken is the bearer token to attach to subsequent requests.
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer".
	TokenType string `json:"token_type"`

	UserID    int     `json:"user_id"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email"`
	Role      string  `json:"role"`
	StudentID *string `json:"student_id"`
}

// PasswordReset is returned when an administrator resets a password.
type PasswordReset struct {
	Message     string `json:"message"`
	NewPassword string `json:"new_password,omitempty"`
}
