package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tedomi2525/My-project/types"
)

const classesPath = "/classes"

// ClassRepository handles the classes collection.
type ClassRepository struct {
	api Requester
}

func NewClassRepository(api Requester) *ClassRepository {
	return &ClassRepository{api: api}
}

func (r *ClassRepository) List(ctx context.Context) ([]types.Class, error) {
	var classes []types.Class
	if err := r.api.Do(ctx, http.MethodGet, classesPath, nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassRepository) Get(ctx context.Context, id int) (types.Class, error) {
	var class types.Class
	if err := r.api.Do(ctx, http.MethodGet, itemPath(classesPath, id), nil, &class); err != nil {
		return types.Class{}, err
	}
	return class, nil
}

func (r *ClassRepository) Create(ctx context.Context, in types.ClassInput) (types.Class, error) {
	var class types.Class
	if err := r.api.Do(ctx, http.MethodPost, classesPath, in, &class); err != nil {
		return types.Class{}, err
	}
	return class, nil
}

func (r *ClassRepository) Update(ctx context.Context, id int, in types.ClassUpdate) (types.Class, error) {
	var class types.Class
	if err := r.api.Do(ctx, http.MethodPut, itemPath(classesPath, id), in, &class); err != nil {
		return types.Class{}, err
	}
	return class, nil
}

func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	return r.api.Do(ctx, http.MethodDelete, itemPath(classesPath, id), nil, nil)
}

// AddStudent enrolls a student into a class.
func (r *ClassRepository) AddStudent(ctx context.Context, enrollment types.Enrollment) error {
	return r.api.Do(ctx, http.MethodPost, classesPath+"/join", enrollment, nil)
}

// RemoveStudent removes a student from a class.
func (r *ClassRepository) RemoveStudent(ctx context.Context, classID, studentID int) error {
	path := fmt.Sprintf("%s/%d/students/%d", classesPath, classID, studentID)
	return r.api.Do(ctx, http.MethodDelete, path, nil, nil)
}
