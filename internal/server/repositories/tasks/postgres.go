package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	var (
		t           models.Task
		completedAt sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.Text, &t.Completed, &completedAt, &t.OwnerID); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Int64
	}
	return &t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (owner_id, text)
		VALUES ($1, $2)
		RETURNING id, text, completed, completed_at, owner_id
	`
	created, err := scanTask(r.db.QueryRowContext(ctx, query, task.OwnerID, task.Text))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `
		SELECT id, text, completed, completed_at, owner_id FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindOne(ctx context.Context, ownerID, id string) (*models.Task, error) {
	query := `
		SELECT id, text, completed, completed_at, owner_id FROM tasks
		WHERE id = $1 AND owner_id = $2
	`
	return r.one(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks SET text = $3, completed = $4, completed_at = $5
		WHERE id = $1 AND owner_id = $2
		RETURNING id, text, completed, completed_at, owner_id
	`
	var completedAt sql.NullInt64
	if task.CompletedAt != nil {
		completedAt = sql.NullInt64{Int64: *task.CompletedAt, Valid: true}
	}
	return r.one(r.db.QueryRowContext(ctx, query,
		task.ID, task.OwnerID, task.Text, task.Completed, completedAt))
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
		RETURNING id, text, completed, completed_at, owner_id
	`
	return r.one(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) one(row *sql.Row) (*models.Task, error) {
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}
