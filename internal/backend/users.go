package backend

import (
	"fmt"
	"strings"

	"github.com/Tedomi2525/My-project/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	id          int
	username    string
	fullName    string
	email       string
	role        string
	studentCode string
	hash        []byte
}

func (a *account) user() types.User {
	return types.User{
		ID:          a.id,
		Username:    a.username,
		FullName:    a.fullName,
		Email:       a.email,
		Role:        types.Role(a.role),
		StudentCode: a.studentCode,
	}
}

func studentCode(n int) string {
	return fmt.Sprintf("SV%04d", n)
}

// Authenticate checks a username and password pair.
func (m *Memory) Authenticate(username, password string) (types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc := m.accountByUsername(username)
	if acc == nil {
		return types.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return acc.user(), nil
}

func (m *Memory) accountByUsername(username string) *account {
	for _, acc := range m.accounts {
		if strings.EqualFold(acc.username, username) {
			return acc
		}
	}
	return nil
}

func (m *Memory) User(id int) (types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.accounts[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return acc.user(), nil
}

func (m *Memory) Users() []types.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]types.User, 0, len(m.accounts))
	for _, id := range sortedKeys(m.accounts) {
		users = append(users, m.accounts[id].user())
	}
	return users
}

func (m *Memory) CreateUser(in types.UserCreate) (types.User, error) {
	username := strings.TrimSpace(in.Username)
	role, ok := types.ParseRole(in.Role.String())
	if username == "" || in.Password == "" || !ok {
		return types.User{}, fmt.Errorf("%w: username, password and a valid role are required", ErrInvalidInput)
	}
	hash, err := m.hash(in.Password)
	if err != nil {
		return types.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accountByUsername(username) != nil {
		return types.User{}, fmt.Errorf("username %q: %w", username, ErrConflict)
	}
	acc := &account{
		id:          m.nextID(),
		username:    username,
		fullName:    strings.TrimSpace(in.FullName),
		email:       strings.TrimSpace(in.Email),
		role:        role.String(),
		studentCode: strings.TrimSpace(in.StudentCode),
		hash:        hash,
	}
	if role == types.RoleStudent && acc.studentCode == "" {
		acc.studentCode = studentCode(acc.id)
	}
	m.accounts[acc.id] = acc
	return acc.user(), nil
}

func (m *Memory) UpdateUser(id int, in types.UserUpdate) (types.User, error) {
	var hash []byte
	if in.Password != nil {
		if *in.Password == "" {
			return types.User{}, fmt.Errorf("%w: empty password", ErrInvalidInput)
		}
		var err error
		if hash, err = m.hash(*in.Password); err != nil {
			return types.User{}, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	if in.Role != nil {
		role, ok := types.ParseRole(in.Role.String())
		if !ok {
			return types.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *in.Role)
		}
		acc.role = role.String()
	}
	if in.FullName != nil {
		acc.fullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		acc.email = strings.TrimSpace(*in.Email)
	}
	if in.StudentCode != nil {
		acc.studentCode = strings.TrimSpace(*in.StudentCode)
	}
	if hash != nil {
		acc.hash = hash
	}
	return acc.user(), nil
}

// DeleteUser removes an account and its class memberships.
func (m *Memory) DeleteUser(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(m.accounts, id)
	for _, class := range m.classes {
		delete(class.members, id)
	}
	return nil
}

// ResetPassword replaces an account password with a generated one and
// returns it.
func (m *Memory) ResetPassword(id int) (string, error) {
	password := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	hash, err := m.hash(password)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return "", ErrNotFound
	}
	acc.hash = hash
	return password, nil
}
