// Package backend is the in-memory data layer of the development server.
package backend

import (
	"errors"
	"slices"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// defaultPoint is the weight of a question linked without an explicit point.
const defaultPoint = 1.0

// Memory holds every collection behind one lock. The zero value is not
// usable; construct with New.
type Memory struct {
	mu       sync.RWMutex
	hashCost int
	now      func() time.Time
	seq      int

	accounts  map[int]*account
	classes   map[int]*classRecord
	questions map[int]*questionRecord
	exams     map[int]*examRecord
	results   map[int]*resultRecord
}

// Option configures a Memory.
type Option func(*Memory)

// WithHashCost sets the bcrypt cost used for stored passwords.
func WithHashCost(cost int) Option {
	return func(m *Memory) { m.hashCost = cost }
}

// WithClock overrides the time source used for exam windows and results.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// SeedAccount is an account created by New.
type SeedAccount struct {
	Username string
	Password string
	FullName string
	Role     string
}

// SeedAccounts are the accounts every fresh Memory starts with.
var SeedAccounts = []SeedAccount{
	{Username: "admin", Password: "admin123", FullName: "Administrator", Role: "admin"},
	{Username: "teacher", Password: "teacher123", FullName: "Default Teacher", Role: "teacher"},
	{Username: "student", Password: "student123", FullName: "Default Student", Role: "student"},
}

// New returns a Memory seeded with SeedAccounts.
func New(opts ...Option) (*Memory, error) {
	m := &Memory{
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
		accounts:  map[int]*account{},
		classes:   map[int]*classRecord{},
		questions: map[int]*questionRecord{},
		exams:     map[int]*examRecord{},
		results:   map[int]*resultRecord{},
	}
	for _, opt := range opts {
		opt(m)
	}

	for i, seed := range SeedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), m.hashCost)
		if err != nil {
			return nil, err
		}
		id := m.nextID()
		acc := &account{
			id:       id,
			username: seed.Username,
			fullName: seed.FullName,
			email:    seed.Username + "@example.com",
			role:     seed.Role,
			hash:     hash,
		}
		if seed.Role == "student" {
			acc.studentCode = studentCode(i + 1)
		}
		m.accounts[id] = acc
	}
	return m, nil
}

func (m *Memory) nextID() int {
	m.seq++
	return m.seq
}

func (m *Memory) hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), m.hashCost)
}

// sortedKeys returns the ids of a collection in creation order.
func sortedKeys[V any](items map[int]V) []int {
	keys := make([]int, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
