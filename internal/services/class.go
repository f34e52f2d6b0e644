package services

import (
	"context"
	"fmt"

	"github.com/Tedomi2525/My-project/types"
)

// ClassRepository defines backend operations for classes.
type ClassRepository interface {
	List(ctx context.Context) ([]types.Class, error)
	Get(ctx context.Context, id int) (types.Class, error)
	Create(ctx context.Context, in types.ClassInput) (types.Class, error)
	Update(ctx context.Context, id int, in types.ClassUpdate) (types.Class, error)
	Delete(ctx context.Context, id int) error
	AddStudent(ctx context.Context, enrollment types.Enrollment) error
	RemoveStudent(ctx context.Context, classID, studentID int) error
}

// ClassService encapsulates class use-cases.
type ClassService struct {
	repo  ClassRepository
	cache listCache[types.Class]
}

func NewClassService(repo ClassRepository) *ClassService {
	return &ClassService{repo: repo}
}

// Items returns the last fetched classes.
func (s *ClassService) Items() []types.Class { return s.cache.snapshot() }

// Loading reports whether a fetch is in flight.
func (s *ClassService) Loading() bool { return s.cache.isLoading() }

func (s *ClassService) List(ctx context.Context) ([]types.Class, error) {
	return s.cache.load(ctx, "classes", s.repo.List)
}

func (s *ClassService) Get(ctx context.Context, id int) (types.Class, error) {
	class, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Class{}, fmt.Errorf("get class %d: %w", id, err)
	}
	return class, nil
}

func (s *ClassService) Create(ctx context.Context, in types.ClassInput) (types.Class, error) {
	class, err := s.repo.Create(ctx, in)
	if err != nil {
		return types.Class{}, fmt.Errorf("create class: %w", err)
	}
	return class, s.refresh(ctx)
}

func (s *ClassService) Update(ctx context.Context, id int, in types.ClassUpdate) (types.Class, error) {
	class, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return types.Class{}, fmt.Errorf("update class %d: %w", id, err)
	}
	return class, s.refresh(ctx)
}

func (s *ClassService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete class %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// AddStudent enrolls a student and reloads the class list.
func (s *ClassService) AddStudent(ctx context.Context, classID, studentID int) error {
	err := s.repo.AddStudent(ctx, types.Enrollment{ClassID: classID, StudentID: studentID})
	if err != nil {
		return fmt.Errorf("add student %d to class %d: %w", studentID, classID, err)
	}
	return s.refresh(ctx)
}

// RemoveStudent removes a student and returns the refreshed class detail.
func (s *ClassService) RemoveStudent(ctx context.Context, classID, studentID int) (types.Class, error) {
	if err := s.repo.RemoveStudent(ctx, classID, studentID); err != nil {
		return types.Class{}, fmt.Errorf("remove student %d from class %d: %w", studentID, classID, err)
	}
	if err := s.refresh(ctx); err != nil {
		return types.Class{}, err
	}
	return s.Get(ctx, classID)
}

func (s *ClassService) refresh(ctx context.Context) error {
	return refreshAfter(ctx, &s.cache, "classes", s.repo.List)
}
