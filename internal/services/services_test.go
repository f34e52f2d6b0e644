package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Tedomi2525/My-project/config"
	"github.com/Tedomi2525/My-project/internal/api"
	"github.com/Tedomi2525/My-project/internal/auth"
	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/internal/guard"
	"github.com/Tedomi2525/My-project/internal/server"
	"github.com/Tedomi2525/My-project/internal/services"
	"github.com/Tedomi2525/My-project/internal/session"
	"github.com/Tedomi2525/My-project/internal/store"
	"github.com/Tedomi2525/My-project/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	client *api.Client
	store  *session.Store
	hits   *atomic.Int32
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv, err := server.New(
		config.DevServerConfig{Port: 8000, LoginRPM: 1000, Secret: "services-test"},
		server.WithBackendOptions(backend.WithHashCost(bcrypt.MinCost)),
		server.WithoutRequestLog(),
	)
	require.NoError(t, err)

	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		srv.Router().ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	sess := session.New(nil)
	return &env{client: api.New(ts.URL, sess), store: sess, hits: &hits}
}

func (e *env) login(t *testing.T, username, password string) types.Identity {
	t.Helper()
	gw := auth.NewGateway(e.store, e.client, guard.NewRouter(e.store, nil))
	id, err := gw.Login(context.Background(), username, password)
	require.NoError(t, err)
	return id
}

func TestServicesRequireIdentity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	classes := services.NewClassService(store.NewClassRepository(e.client))
	exams := services.NewExamService(store.NewExamRepository(e.client))
	questions := services.NewQuestionService(store.NewQuestionRepository(e.client))
	users := services.NewUserService(store.NewUserRepository(e.client))
	admins := services.NewAdminUserService(store.NewAdminUserRepository(e.client))
	results := services.NewResultService(store.NewResultRepository(e.client))

	calls := []func() error{
		func() error { _, err := classes.List(ctx); return err },
		func() error { _, err := classes.Create(ctx, types.ClassInput{Name: "x"}); return err },
		func() error { _, err := exams.List(ctx); return err },
		func() error { _, err := exams.Available(ctx); return err },
		func() error { _, err := questions.List(ctx); return err },
		func() error { _, err := users.List(ctx); return err },
		func() error { _, err := admins.ResetPassword(ctx, 1); return err },
		func() error { _, err := results.ListByExam(ctx, 1); return err },
	}
	for _, call := range calls {
		assert.ErrorIs(t, call(), api.ErrUnauthenticated)
	}
	assert.Equal(t, int32(0), e.hits.Load())
}

func TestClassListIsFreshAfterMutations(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "teacher", "teacher123")
	classes := services.NewClassService(store.NewClassRepository(e.client))

	list, err := classes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := classes.Create(ctx, types.ClassInput{Name: "10A1", Description: "morning"})
	require.NoError(t, err)
	require.Len(t, classes.Items(), 1)
	assert.Equal(t, "10A1", classes.Items()[0].Name)

	name := "10A2"
	_, err = classes.Update(ctx, created.ID, types.ClassUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "10A2", classes.Items()[0].Name)

	require.NoError(t, classes.Delete(ctx, created.ID))
	assert.Empty(t, classes.Items())
	assert.False(t, classes.Loading())
}

func TestClassEnrollment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "teacher", "teacher123")
	classes := services.NewClassService(store.NewClassRepository(e.client))
	users := services.NewUserService(store.NewUserRepository(e.client))

	all, err := users.List(ctx)
	require.NoError(t, err)
	var student types.User
	for _, u := range all {
		if u.Role == types.RoleStudent {
			student = u
		}
	}
	require.NotZero(t, student.ID)

	class, err := classes.Create(ctx, types.ClassInput{Name: "10A1"})
	require.NoError(t, err)

	require.NoError(t, classes.AddStudent(ctx, class.ID, student.ID))
	assert.Equal(t, 1, classes.Items()[0].StudentCount)

	err = classes.AddStudent(ctx, class.ID, student.ID)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	detail, err := classes.RemoveStudent(ctx, class.ID, student.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Students)
	assert.Equal(t, 0, classes.Items()[0].StudentCount)
}

func TestExamLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	teacher := e.login(t, "teacher", "teacher123")

	questions := services.NewQuestionService(store.NewQuestionRepository(e.client))
	exams := services.NewExamService(store.NewExamRepository(e.client))

	q, err := questions.Create(ctx, types.QuestionInput{
		Content:       "Capital of France?",
		Difficulty:    types.DifficultyEasy,
		Options:       map[string]string{"A": "Paris", "B": "Rome"},
		CorrectAnswer: "A",
	})
	require.NoError(t, err)
	assert.Len(t, questions.Items(), 1)

	exam, err := exams.Create(ctx, types.ExamCreate{
		Title: "Geography", DurationMinutes: 15, CreatedBy: teacher.ID, Password: "pw",
	})
	require.NoError(t, err)
	assert.True(t, exam.HasPassword)
	require.Len(t, exams.Items(), 1)

	require.NoError(t, exams.AddQuestion(ctx, exam.ID, q.ID, 2))
	assert.Equal(t, []int{q.ID}, exams.Items()[0].Questions)

	linked, err := exams.Questions(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "A", linked[0].CorrectAnswer)

	ok, err := exams.VerifyPassword(ctx, exam.ID, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = exams.VerifyPassword(ctx, exam.ID, "bad")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, exams.RemoveQuestion(ctx, exam.ID, q.ID))
	assert.Empty(t, exams.Items()[0].Questions)

	require.NoError(t, exams.Delete(ctx, exam.ID))
	assert.Empty(t, exams.Items())

	_, err = exams.Get(ctx, exam.ID)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStudentTakesExam(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.login(t, "teacher", "teacher123")

	classes := services.NewClassService(store.NewClassRepository(e.client))
	questions := services.NewQuestionService(store.NewQuestionRepository(e.client))
	exams := services.NewExamService(store.NewExamRepository(e.client))
	results := services.NewResultService(store.NewResultRepository(e.client))

	class, err := classes.Create(ctx, types.ClassInput{Name: "10A1"})
	require.NoError(t, err)
	q, err := questions.Create(ctx, types.QuestionInput{
		Content: "1+1", Options: map[string]string{"A": "2", "B": "3"}, CorrectAnswer: "A",
	})
	require.NoError(t, err)
	exam, err := exams.Create(ctx, types.ExamCreate{Title: "Math", ClassIDs: []int{class.ID}, Questions: []int{q.ID}})
	require.NoError(t, err)

	users := services.NewUserService(store.NewUserRepository(e.client))
	all, err := users.List(ctx)
	require.NoError(t, err)
	var studentID int
	for _, u := range all {
		if u.Username == "student" {
			studentID = u.ID
		}
	}
	require.NoError(t, classes.AddStudent(ctx, class.ID, studentID))

	// Same client, new session: the backend keeps what the teacher created.
	require.NoError(t, e.store.Clear(ctx))
	student := e.login(t, "student", "student123")
	require.Equal(t, studentID, student.ID)

	available, err := exams.Available(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, exam.ID, available[0].ID)

	shown, err := exams.Questions(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, shown, 1)
	assert.Empty(t, shown[0].CorrectAnswer)

	result, err := results.Submit(ctx, exam.ID, student.ID, types.SubmitRequest{
		Answers: []types.Answer{{QuestionID: q.ID, SelectedOption: "A"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.TotalScore)

	review, err := results.Review(ctx, result.ID)
	require.NoError(t, err)
	require.Len(t, review.Questions, 1)
	assert.True(t, review.Questions[0].IsCorrect)
	assert.Empty(t, review.Questions[0].CorrectAnswer)

	_, err = results.ListByExam(ctx, exam.ID)
	assert.ErrorIs(t, err, api.ErrForbidden)

	require.NoError(t, e.store.Clear(ctx))
	e.login(t, "teacher", "teacher123")
	list, err := results.ListByExam(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, student.ID, list[0].StudentID)
	assert.Len(t, results.Items(), 1)
}

func TestAdminUsers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "admin", "admin123")
	admins := services.NewAdminUserService(store.NewAdminUserRepository(e.client))

	before, err := admins.List(ctx)
	require.NoError(t, err)

	created, err := admins.Create(ctx, types.UserCreate{
		Username: "t2", Password: "pw", FullName: "Second Teacher", Email: "t2@example.com", Role: types.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Len(t, admins.Items(), len(before)+1)

	fullName := "Renamed"
	updated, err := admins.Update(ctx, created.ID, types.UserUpdate{FullName: &fullName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FullName)

	reset, err := admins.ResetPassword(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, reset.NewPassword)

	require.NoError(t, admins.Delete(ctx, created.ID))
	assert.Len(t, admins.Items(), len(before))
}

func TestTeacherCannotUseAdminUsers(t *testing.T) {
	e := newEnv(t)
	e.login(t, "teacher", "teacher123")
	admins := services.NewAdminUserService(store.NewAdminUserRepository(e.client))

	_, err := admins.List(context.Background())
	assert.ErrorIs(t, err, api.ErrForbidden)
	assert.Empty(t, admins.Items())
}
