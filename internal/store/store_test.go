package store

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Tedomi2525/My-project/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	body   any
}

// fakeRequester records each call and answers with reply, if set.
type fakeRequester struct {
	calls []recorded
	reply string
}

func (f *fakeRequester) Do(_ context.Context, method, path string, body, out any) error {
	f.calls = append(f.calls, recorded{method: method, path: path, body: body})
	if out != nil && f.reply != "" {
		return json.Unmarshal([]byte(f.reply), out)
	}
	return nil
}

func (f *fakeRequester) last(t *testing.T) recorded {
	t.Helper()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func TestRoutes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		call   func(*fakeRequester) error
		method string
		path   string
	}{
		{"class join", func(f *fakeRequester) error {
			return NewClassRepository(f).AddStudent(ctx, types.Enrollment{ClassID: 1, StudentID: 2})
		}, http.MethodPost, "/classes/join"},
		{"class remove student", func(f *fakeRequester) error {
			return NewClassRepository(f).RemoveStudent(ctx, 1, 2)
		}, http.MethodDelete, "/classes/1/students/2"},
		{"class update", func(f *fakeRequester) error {
			_, err := NewClassRepository(f).Update(ctx, 4, types.ClassUpdate{})
			return err
		}, http.MethodPut, "/classes/4"},
		{"exam questions", func(f *fakeRequester) error {
			_, err := NewExamRepository(f).Questions(ctx, 3)
			return err
		}, http.MethodGet, "/exams/3/questions"},
		{"exam add question", func(f *fakeRequester) error {
			return NewExamRepository(f).AddQuestion(ctx, types.ExamQuestionLink{ExamID: 3, QuestionID: 8})
		}, http.MethodPost, "/exams/3/questions"},
		{"exam remove question", func(f *fakeRequester) error {
			return NewExamRepository(f).RemoveQuestion(ctx, 3, 8)
		}, http.MethodDelete, "/exams/3/questions/8"},
		{"exam available", func(f *fakeRequester) error {
			_, err := NewExamRepository(f).Available(ctx)
			return err
		}, http.MethodGet, "/exams/student-available"},
		{"exam verify password", func(f *fakeRequester) error {
			_, err := NewExamRepository(f).VerifyPassword(ctx, 3, "pw")
			return err
		}, http.MethodPost, "/exams/3/verify-password"},
		{"question delete", func(f *fakeRequester) error {
			return NewQuestionRepository(f).Delete(ctx, 5)
		}, http.MethodDelete, "/questions/5"},
		{"users get", func(f *fakeRequester) error {
			_, err := NewUserRepository(f).Get(ctx, 6)
			return err
		}, http.MethodGet, "/users/6"},
		{"admin users list", func(f *fakeRequester) error {
			_, err := NewAdminUserRepository(f).List(ctx)
			return err
		}, http.MethodGet, "/admin/users"},
		{"admin reset password", func(f *fakeRequester) error {
			_, err := NewAdminUserRepository(f).ResetPassword(ctx, 6)
			return err
		}, http.MethodPost, "/admin/users/6/reset-password"},
		{"results submit", func(f *fakeRequester) error {
			_, err := NewResultRepository(f).Submit(ctx, 3, 9, types.SubmitRequest{})
			return err
		}, http.MethodPost, "/results/submit/3/9"},
		{"results by exam", func(f *fakeRequester) error {
			_, err := NewResultRepository(f).ListByExam(ctx, 3)
			return err
		}, http.MethodGet, "/results/exam/3"},
		{"results review", func(f *fakeRequester) error {
			_, err := NewResultRepository(f).Review(ctx, 11)
			return err
		}, http.MethodGet, "/results/11/review"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRequester{}
			require.NoError(t, tt.call(f))
			got := f.last(t)
			assert.Equal(t, tt.method, got.method)
			assert.Equal(t, tt.path, got.path)
		})
	}
}

func TestVerifyPasswordDecodesSuccess(t *testing.T) {
	f := &fakeRequester{reply: `{"success": true}`}
	ok, err := NewExamRepository(f).VerifyPassword(context.Background(), 3, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"password": "pw"}, f.last(t).body)
}

func TestListDecodesCollection(t *testing.T) {
	f := &fakeRequester{reply: `[{"id": 1, "name": "10A1", "teacher_id": 2, "student_count": 0}]`}
	classes, err := NewClassRepository(f).List(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "10A1", classes[0].Name)
}
