package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/profile-service/internal/domain"
	"github.com/spec-kit/profile-service/internal/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	failGet bool
	// failUpdate makes Update fail once, then succeed.
	failUpdate bool
	updates    int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.failUpdate {
		r.failUpdate = false
		return fmt.Errorf("update rejected")
	}
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet {
		return nil, fmt.Errorf("storage unavailable")
	}
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeStateRepo struct {
	mu     sync.Mutex
	states map[string]*repository.SetupState
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: make(map[string]*repository.SetupState)}
}

func (r *fakeStateRepo) Get(_ context.Context, userID string) (*repository.SetupState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[userID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStateRepo) Save(_ context.Context, userID string, state *repository.SetupState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *state
	r.states[userID] = &cp
	return nil
}

func (r *fakeStateRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, userID)
	return nil
}

type fakeCodeRepo struct {
	mu       sync.Mutex
	codes    map[string]string
	attempts map[string]int
	cooldown map[string]bool
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{
		codes:    make(map[string]string),
		attempts: make(map[string]int),
		cooldown: make(map[string]bool),
	}
}

func (r *fakeCodeRepo) SaveCode(_ context.Context, userID, codeHash string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[userID] = codeHash
	delete(r.attempts, userID)
	return nil
}

func (r *fakeCodeRepo) GetCode(_ context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, ok := r.codes[userID]
	if !ok {
		return "", repository.ErrCodeNotFound
	}
	return hash, nil
}

func (r *fakeCodeRepo) DeleteCode(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, userID)
	delete(r.attempts, userID)
	return nil
}

func (r *fakeCodeRepo) IncrementAttempts(_ context.Context, userID string, _ time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[userID]++
	return r.attempts[userID], nil
}

func (r *fakeCodeRepo) SetCooldown(_ context.Context, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cooldown[userID] = true
	return nil
}

func (r *fakeCodeRepo) InCooldown(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cooldown[userID], nil
}

type fakeOrgRepo struct {
	mu   sync.Mutex
	orgs map[string]*domain.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*domain.Organization)}
}

func (r *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if org.ID == "" {
		org.ID = fmt.Sprintf("org-%d", len(r.orgs)+1)
	}
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	cp := *org
	r.orgs[org.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) Update(_ context.Context, org *domain.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orgs[org.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *org
	r.orgs[org.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.orgs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *org
	return &cp, nil
}

func (r *fakeOrgRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Organization
	for _, org := range r.orgs {
		if org.OwnerID == ownerID {
			out = append(out, *org)
		}
	}
	return out, nil
}

type fakeAppRepo struct {
	mu   sync.Mutex
	apps map[string]*domain.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*domain.Application)}
}

func (r *fakeAppRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", len(r.apps)+1)
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeAppRepo) Update(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *app
	return &cp, nil
}

func (r *fakeAppRepo) ListByOrganization(_ context.Context, organizationID string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Application
	for _, app := range r.apps {
		if app.OrganizationID == organizationID {
			out = append(out, *app)
		}
	}
	return out, nil
}
