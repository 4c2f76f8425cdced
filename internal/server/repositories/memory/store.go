// Package memory keeps accounts and tasks in process memory. It backs the
// "memory" database DSN for local runs and the service and HTTP tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// Store is safe for concurrent use. Each method is atomic, matching the
// per-row atomicity of the SQL store.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account // by id
	byEmail  map[string]string          // email -> id
	tasks    []*models.Task             // insertion order
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*models.Account),
		byEmail:  make(map[string]string),
	}
}

// Accounts returns the account repository view of the store.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s: s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

type AccountRepository struct {
	s *Store
}

func copyAccount(a *models.Account) *models.Account {
	c := *a
	c.Tokens = append([]models.AccountToken(nil), a.Tokens...)
	return &c
}

func (r *AccountRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.byEmail[account.Email]; taken {
		return nil, common.ErrDuplicateEmail
	}

	stored := copyAccount(account)
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	stored.Tokens = []models.AccountToken{}
	r.s.accounts[stored.ID] = stored
	r.s.byEmail[stored.Email] = stored.ID

	account.ID = stored.ID
	account.CreatedAt = stored.CreatedAt
	return account, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyAccount(r.s.accounts[id]), nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyAccount(a), nil
}

func (r *AccountRepository) AppendToken(_ context.Context, accountID, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return common.ErrNotFound
	}
	a.Tokens = append(a.Tokens, models.AccountToken{Access: common.ScopeAuth, Token: token})
	return nil
}

func (r *AccountRepository) RemoveToken(_ context.Context, accountID, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return nil
	}
	kept := a.Tokens[:0]
	for _, t := range a.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	a.Tokens = kept
	return nil
}

func (r *AccountRepository) HasToken(_ context.Context, accountID, token string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return false, nil
	}
	for _, t := range a.Tokens {
		if t.Token == token {
			return true, nil
		}
	}
	return false, nil
}

type TaskRepository struct {
	s *Store
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// find returns the index of the task owned by ownerID, or -1.
func (r *TaskRepository) find(ownerID, id string) int {
	for i, t := range r.s.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (r *TaskRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := &models.Task{ID: uuid.NewString(), Text: task.Text, OwnerID: task.OwnerID}
	r.s.tasks = append(r.s.tasks, stored)
	return copyTask(stored), nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID string) ([]*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Task, 0)
	for _, t := range r.s.tasks {
		if t.OwnerID == ownerID {
			result = append(result, copyTask(t))
		}
	}
	return result, nil
}

func (r *TaskRepository) FindOne(_ context.Context, ownerID, id string) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.find(ownerID, id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	return copyTask(r.s.tasks[i]), nil
}

func (r *TaskRepository) Update(_ context.Context, task *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.find(task.OwnerID, task.ID)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	stored := r.s.tasks[i]
	stored.Text = task.Text
	stored.Completed = task.Completed
	stored.CompletedAt = nil
	if task.CompletedAt != nil {
		at := *task.CompletedAt
		stored.CompletedAt = &at
	}
	return copyTask(stored), nil
}

func (r *TaskRepository) Delete(_ context.Context, ownerID, id string) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.find(ownerID, id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	removed := r.s.tasks[i]
	r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
	return removed, nil
}
