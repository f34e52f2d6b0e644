package backend

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Tedomi2525/My-project/types"
	"golang.org/x/crypto/bcrypt"
)

type examRecord struct {
	id               int
	title            string
	description      *string
	duration         int
	start, end       *time.Time
	allowViewAnswers bool
	createdBy        int
	password         []byte
	classes          map[int]struct{}
	// questions keeps link order; points holds each link's weight.
	questions []int
	points    map[int]float64
}

func (e *examRecord) link(questionID int, point float64) {
	if point <= 0 {
		point = defaultPoint
	}
	if _, ok := e.points[questionID]; !ok {
		e.questions = append(e.questions, questionID)
	}
	e.points[questionID] = point
}

func (e *examRecord) unlink(questionID int) bool {
	if _, ok := e.points[questionID]; !ok {
		return false
	}
	delete(e.points, questionID)
	e.questions = slices.DeleteFunc(e.questions, func(id int) bool { return id == questionID })
	return true
}

func (e *examRecord) status(now time.Time) types.ExamStatus {
	switch {
	case e.end != nil && !now.Before(*e.end):
		return types.ExamEnded
	case e.start != nil && now.Before(*e.start):
		return types.ExamDraft
	default:
		return types.ExamActive
	}
}

func (e *examRecord) exam(now time.Time) types.Exam {
	classes := make([]int, 0, len(e.classes))
	for id := range e.classes {
		classes = append(classes, id)
	}
	slices.Sort(classes)
	return types.Exam{
		ID:               e.id,
		Title:            e.title,
		Description:      e.description,
		DurationMinutes:  e.duration,
		StartTime:        e.start,
		EndTime:          e.end,
		AllowViewAnswers: e.allowViewAnswers,
		CreatedBy:        e.createdBy,
		HasPassword:      len(e.password) > 0,
		AllowedClasses:   classes,
		Questions:        slices.Clone(e.questions),
		Status:           e.status(now),
	}
}

func validateWindow(start, end *time.Time, duration int) error {
	if duration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidInput)
	}
	if start != nil && end != nil && !start.Before(*end) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	return nil
}

// checkRefsLocked verifies that every referenced class and question exists.
func (m *Memory) checkRefsLocked(classIDs, questionIDs []int) error {
	for _, id := range classIDs {
		if _, ok := m.classes[id]; !ok {
			return fmt.Errorf("class %d: %w", id, ErrNotFound)
		}
	}
	for _, id := range questionIDs {
		if _, ok := m.questions[id]; !ok {
			return fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
	}
	return nil
}

func (m *Memory) Exams() []types.Exam {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	exams := make([]types.Exam, 0, len(m.exams))
	for _, id := range sortedKeys(m.exams) {
		exams = append(exams, m.exams[id].exam(now))
	}
	return exams
}

func (m *Memory) Exam(id int) (types.Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[id]
	if !ok {
		return types.Exam{}, ErrNotFound
	}
	return e.exam(m.now()), nil
}

func (m *Memory) CreateExam(createdBy int, in types.ExamCreate) (types.Exam, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return types.Exam{}, fmt.Errorf("%w: exam title is required", ErrInvalidInput)
	}
	if err := validateWindow(in.StartTime, in.EndTime, in.DurationMinutes); err != nil {
		return types.Exam{}, err
	}
	var password []byte
	if in.Password != "" {
		var err error
		if password, err = bcrypt.GenerateFromPassword([]byte(in.Password), m.hashCost); err != nil {
			return types.Exam{}, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkRefsLocked(in.ClassIDs, in.Questions); err != nil {
		return types.Exam{}, err
	}
	e := &examRecord{
		id:               m.nextID(),
		title:            title,
		duration:         in.DurationMinutes,
		start:            in.StartTime,
		end:              in.EndTime,
		allowViewAnswers: in.AllowViewAnswers,
		createdBy:        createdBy,
		password:         password,
		classes:          map[int]struct{}{},
		points:           map[int]float64{},
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		e.description = &d
	}
	for _, id := range in.ClassIDs {
		e.classes[id] = struct{}{}
	}
	for _, id := range in.Questions {
		e.link(id, defaultPoint)
	}
	m.exams[e.id] = e
	return e.exam(m.now()), nil
}

func (m *Memory) UpdateExam(id int, in types.ExamUpdate) (types.Exam, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return types.Exam{}, fmt.Errorf("%w: exam title is required", ErrInvalidInput)
	}
	var password []byte
	if in.Password != nil && *in.Password != "" {
		var err error
		if password, err = bcrypt.GenerateFromPassword([]byte(*in.Password), m.hashCost); err != nil {
			return types.Exam{}, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exams[id]
	if !ok {
		return types.Exam{}, ErrNotFound
	}
	if err := m.checkRefsLocked(in.ClassIDs, in.Questions); err != nil {
		return types.Exam{}, err
	}

	start, end, duration := e.start, e.end, e.duration
	if in.StartTime != nil {
		start = in.StartTime
	}
	if in.EndTime != nil {
		end = in.EndTime
	}
	if in.DurationMinutes != nil {
		duration = *in.DurationMinutes
	}
	if err := validateWindow(start, end, duration); err != nil {
		return types.Exam{}, err
	}
	e.start, e.end, e.duration = start, end, duration

	if in.Title != nil {
		e.title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		e.description = &d
	}
	if in.AllowViewAnswers != nil {
		e.allowViewAnswers = *in.AllowViewAnswers
	}
	if in.Password != nil {
		// An empty password removes the protection.
		e.password = password
	}
	if in.ClassIDs != nil {
		e.classes = map[int]struct{}{}
		for _, cid := range in.ClassIDs {
			e.classes[cid] = struct{}{}
		}
	}
	if in.Questions != nil {
		previous := e.points
		e.questions, e.points = nil, map[int]float64{}
		for _, qid := range in.Questions {
			e.link(qid, previous[qid])
		}
	}
	return e.exam(m.now()), nil
}

func (m *Memory) DeleteExam(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[id]; !ok {
		return ErrNotFound
	}
	delete(m.exams, id)
	for rid, r := range m.results {
		if r.examID == id {
			delete(m.results, rid)
		}
	}
	return nil
}

// LinkQuestion attaches a question to an exam, replacing the point of an
// existing link.
func (m *Memory) LinkQuestion(examID, questionID int, point float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exams[examID]
	if !ok {
		return fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}
	if _, ok := m.questions[questionID]; !ok {
		return fmt.Errorf("question %d: %w", questionID, ErrNotFound)
	}
	e.link(questionID, point)
	return nil
}

func (m *Memory) UnlinkQuestion(examID, questionID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exams[examID]
	if !ok {
		return fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}
	if !e.unlink(questionID) {
		return fmt.Errorf("question %d in exam %d: %w", questionID, examID, ErrNotFound)
	}
	return nil
}

// ExamQuestions returns the questions of an exam in link order. Correct
// answers are blanked when reveal is false.
func (m *Memory) ExamQuestions(examID int, reveal bool) ([]types.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[examID]
	if !ok {
		return nil, ErrNotFound
	}
	questions := make([]types.Question, 0, len(e.questions))
	for _, qid := range e.questions {
		q, ok := m.questions[qid]
		if !ok {
			continue
		}
		out := q.question()
		if !reveal {
			out.CorrectAnswer = ""
		}
		questions = append(questions, out)
	}
	return questions, nil
}

// AvailableFor lists the exams assigned to one of the student's classes
// that have not ended yet.
func (m *Memory) AvailableFor(studentID int) []types.Exam {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()

	member := map[int]bool{}
	for id, c := range m.classes {
		if _, ok := c.members[studentID]; ok {
			member[id] = true
		}
	}

	exams := []types.Exam{}
	for _, id := range sortedKeys(m.exams) {
		e := m.exams[id]
		if e.status(now) == types.ExamEnded {
			continue
		}
		for cid := range e.classes {
			if member[cid] {
				exams = append(exams, e.exam(now))
				break
			}
		}
	}
	return exams
}

// VerifyExamPassword reports whether password opens an exam. Exams without
// a password accept anything.
func (m *Memory) VerifyExamPassword(examID int, password string) (bool, error) {
	m.mu.RLock()
	e, ok := m.exams[examID]
	var hash []byte
	if ok {
		hash = e.password
	}
	m.mu.RUnlock()
	if !ok {
		return false, ErrNotFound
	}
	if len(hash) == 0 {
		return true, nil
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil, nil
}
