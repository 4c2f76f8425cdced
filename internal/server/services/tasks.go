package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// TaskService scopes every task operation to the calling account.
type TaskService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(m repomanager.RepositoryManager) *TaskService {
	return &TaskService{repomanager: m, now: time.Now}
}

// WithClock replaces the time source used for completion timestamps.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) repo() tasks.Repository {
	return s.repomanager.Tasks(s.repomanager.Conn())
}

func cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", common.ErrValidation)
	}
	return text, nil
}

func (s *TaskService) Create(ctx context.Context, ownerID, text string) (*models.Task, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}
	return s.repo().Create(ctx, &models.Task{Text: text, OwnerID: ownerID})
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	return s.repo().ListByOwner(ctx, ownerID)
}

// resolve loads the task id owned by ownerID. A malformed id is rejected
// before the store is consulted; a foreign task looks exactly like a
// missing one.
func (s *TaskService) resolve(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrInvalidIdentifier
	}
	return s.repo().FindOne(ctx, ownerID, id)
}

func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	return s.resolve(ctx, ownerID, id)
}

// Update applies patch. Completion is recomputed on every call: only an
// explicit completed=true keeps (and restamps) the task as done.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.resolve(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		text, err := cleanText(*patch.Text)
		if err != nil {
			return nil, err
		}
		task.Text = text
	}

	if patch.Completed {
		at := s.now().UnixMilli()
		task.Completed = true
		task.CompletedAt = &at
	} else {
		task.Completed = false
		task.CompletedAt = nil
	}

	return s.repo().Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if _, err := s.resolve(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.repo().Delete(ctx, ownerID, id)
}
