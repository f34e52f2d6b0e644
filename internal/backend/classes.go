package backend

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tedomi2525/My-project/types"
)

type classRecord struct {
	id          int
	name        string
	description string
	teacherID   int
	members     map[int]time.Time
}

func (m *Memory) classLocked(c *classRecord) types.Class {
	class := types.Class{
		ID:          c.id,
		Name:        c.name,
		Description: c.description,
		TeacherID:   c.teacherID,
		Students:    []types.StudentInClass{},
	}
	for _, sid := range sortedKeys(c.members) {
		acc, ok := m.accounts[sid]
		if !ok {
			continue
		}
		class.Students = append(class.Students, types.StudentInClass{
			ID:          acc.id,
			FullName:    acc.fullName,
			Email:       acc.email,
			StudentCode: acc.studentCode,
			JoinedAt:    c.members[sid],
		})
	}
	class.StudentCount = len(class.Students)
	return class
}

func (m *Memory) Classes() []types.Class {
	m.mu.RLock()
	defer m.mu.RUnlock()
	classes := make([]types.Class, 0, len(m.classes))
	for _, id := range sortedKeys(m.classes) {
		classes = append(classes, m.classLocked(m.classes[id]))
	}
	return classes
}

func (m *Memory) Class(id int) (types.Class, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.classes[id]
	if !ok {
		return types.Class{}, ErrNotFound
	}
	return m.classLocked(c), nil
}

func (m *Memory) CreateClass(teacherID int, in types.ClassInput) (types.Class, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return types.Class{}, fmt.Errorf("%w: class name is required", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c := &classRecord{
		id:          m.nextID(),
		name:        name,
		description: strings.TrimSpace(in.Description),
		teacherID:   teacherID,
		members:     map[int]time.Time{},
	}
	m.classes[c.id] = c
	return m.classLocked(c), nil
}

func (m *Memory) UpdateClass(id int, in types.ClassUpdate) (types.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return types.Class{}, ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return types.Class{}, fmt.Errorf("%w: class name is required", ErrInvalidInput)
		}
		c.name = name
	}
	if in.Description != nil {
		c.description = strings.TrimSpace(*in.Description)
	}
	return m.classLocked(c), nil
}

// DeleteClass removes a class and its exam assignments.
func (m *Memory) DeleteClass(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.classes[id]; !ok {
		return ErrNotFound
	}
	delete(m.classes, id)
	for _, exam := range m.exams {
		delete(exam.classes, id)
	}
	return nil
}

// Enroll adds a student account to a class.
func (m *Memory) Enroll(classID, studentID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[classID]
	if !ok {
		return fmt.Errorf("class %d: %w", classID, ErrNotFound)
	}
	acc, ok := m.accounts[studentID]
	if !ok {
		return fmt.Errorf("student %d: %w", studentID, ErrNotFound)
	}
	if acc.role != "student" {
		return fmt.Errorf("%w: user %d is not a student", ErrInvalidInput, studentID)
	}
	if _, ok := c.members[studentID]; ok {
		return fmt.Errorf("student %d in class %d: %w", studentID, classID, ErrConflict)
	}
	c.members[studentID] = m.now().UTC()
	return nil
}

func (m *Memory) Unenroll(classID, studentID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[classID]
	if !ok {
		return fmt.Errorf("class %d: %w", classID, ErrNotFound)
	}
	if _, ok := c.members[studentID]; !ok {
		return fmt.Errorf("student %d in class %d: %w", studentID, classID, ErrNotFound)
	}
	delete(c.members, studentID)
	return nil
}
