package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated is returned before any request is sent when a call
	// needs an identity and none is held.
	ErrUnauthenticated = errors.New("unauthenticated: login required")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap maps well-known statuses to sentinel errors so callers can use
// errors.Is.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

func decodeError(status int, body []byte) *Error {
	fallback := fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &Error{Status: status, Message: fallback}
	}

	if msg := parseDetail(parsed.Detail); msg != "" {
		return &Error{Status: status, Message: msg}
	}
	if parsed.Error != "" {
		return &Error{Status: status, Message: parsed.Error}
	}
	if parsed.Message != "" {
		return &Error{Status: status, Message: parsed.Message}
	}
	return &Error{Status: status, Message: fallback}
}

// parseDetail accepts both `"detail": "text"` and the validation form
// `"detail": [{"msg": "..."}, ...]`.
func parseDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var issues []validationIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if m := strings.TrimSpace(issue.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, ", ")
	}
	return ""
}
