// Package tasks declares the owner-scoped task store and its PostgreSQL
// implementation. Every query that touches an existing task filters on
// both id and owner.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists tasks. Lookups by id return common.ErrNotFound when
// the task does not exist or belongs to a different owner.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	FindOne(ctx context.Context, ownerID, id string) (*models.Task, error)

	// Update writes text, completed and completed_at of task, matched by
	// task.ID and task.OwnerID.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)

	// Delete removes the task and returns it as it was.
	Delete(ctx context.Context, ownerID, id string) (*models.Task, error)
}
