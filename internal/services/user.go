package services

import (
	"context"
	"fmt"

	"github.com/Tedomi2525/My-project/types"
)

// UserRepository defines backend operations for accounts.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	Get(ctx context.Context, id int) (types.User, error)
	Create(ctx context.Context, in types.UserCreate) (types.User, error)
	Update(ctx context.Context, id int, in types.UserUpdate) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// AdminUserRepository adds the administrator-only operations.
type AdminUserRepository interface {
	UserRepository
	ResetPassword(ctx context.Context, id int) (types.PasswordReset, error)
}

// UserService encapsulates user use-cases on /users.
type UserService struct {
	repo  UserRepository
	cache listCache[types.User]
	what  string
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, what: "users"}
}

func (s *UserService) Items() []types.User { return s.cache.snapshot() }

func (s *UserService) Loading() bool { return s.cache.isLoading() }

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.cache.load(ctx, s.what, s.repo.List)
}

func (s *UserService) Get(ctx context.Context, id int) (types.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, in types.UserCreate) (types.User, error) {
	user, err := s.repo.Create(ctx, in)
	if err != nil {
		return types.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, s.refresh(ctx)
}

func (s *UserService) Update(ctx context.Context, id int, in types.UserUpdate) (types.User, error) {
	user, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return types.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, s.refresh(ctx)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return s.refresh(ctx)
}

func (s *UserService) refresh(ctx context.Context) error {
	return refreshAfter(ctx, &s.cache, s.what, s.repo.List)
}

// AdminUserService manages accounts through /admin/users.
type AdminUserService struct {
	*UserService
	admin AdminUserRepository
}

func NewAdminUserService(repo AdminUserRepository) *AdminUserService {
	return &AdminUserService{
		UserService: &UserService{repo: repo, what: "admin users"},
		admin:       repo,
	}
}

// ResetPassword resets an account password and reloads the list.
func (s *AdminUserService) ResetPassword(ctx context.Context, id int) (types.PasswordReset, error) {
	reset, err := s.admin.ResetPassword(ctx, id)
	if err != nil {
		return types.PasswordReset{}, fmt.Errorf("reset password of user %d: %w", id, err)
	}
	return reset, s.refresh(ctx)
}
