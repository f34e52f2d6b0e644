package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tedomi2525/My-project/types"
)

const (
	usersPath      = "/users"
	adminUsersPath = "/admin/users"
)

// UserRepository handles an accounts collection. The same shape is served
// under /users and, for administrators, /admin/users.
type UserRepository struct {
	api  Requester
	base string
}

func NewUserRepository(api Requester) *UserRepository {
	return &UserRepository{api: api, base: usersPath}
}

func NewAdminUserRepository(api Requester) *UserRepository {
	return &UserRepository{api: api, base: adminUsersPath}
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	var users []types.User
	if err := r.api.Do(ctx, http.MethodGet, r.base, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id int) (types.User, error) {
	var user types.User
	if err := r.api.Do(ctx, http.MethodGet, itemPath(r.base, id), nil, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, in types.UserCreate) (types.User, error) {
	var user types.User
	if err := r.api.Do(ctx, http.MethodPost, r.base, in, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id int, in types.UserUpdate) (types.User, error) {
	var user types.User
	if err := r.api.Do(ctx, http.MethodPut, itemPath(r.base, id), in, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	return r.api.Do(ctx, http.MethodDelete, itemPath(r.base, id), nil, nil)
}

// ResetPassword asks the backend to reset an account password.
func (r *UserRepository) ResetPassword(ctx context.Context, id int) (types.PasswordReset, error) {
	var reset types.PasswordReset
	path := fmt.Sprintf("%s/%d/reset-password", r.base, id)
	if err := r.api.Do(ctx, http.MethodPost, path, nil, &reset); err != nil {
		return types.PasswordReset{}, err
	}
	return reset, nil
}
