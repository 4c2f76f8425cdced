package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ RepositoryManager = (*PostgresRepositoryManager)(nil)
	_ RepositoryManager = (*MemoryRepositoryManager)(nil)
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestNew_PicksImplementation(t *testing.T) {
	m, err := New(MemoryDSN)
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepositoryManager{}, m)

	m, err = New("postgres://u:p@localhost:5432/db?sslmode=disable")
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)
	require.NoError(t, m.Close())
}

func TestPostgres_FactoriesReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManagerWithDB(db)

	assert.IsType(t, &accounts.PostgresRepository{}, m.Accounts(db))
	assert.IsType(t, &tasks.PostgresRepository{}, m.Tasks(db))
	assert.Equal(t, db, m.Conn())
	assert.IsType(t, dbx.SQLTransactor{}, m.Transactor())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManagerWithDB(db)
	require.NoError(t, m.RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManagerWithDB(db)
	err := m.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunMigrations_RetriesPingUntilReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	origBackoff, origUp := pingBackoff, gooseUpContext
	pingBackoff = func() retry.Backoff { return retry.WithMaxRetries(3, retry.NewConstant(time.Millisecond)) }
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return nil }
	defer func() { pingBackoff, gooseUpContext = origBackoff, origUp }()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	m := NewPostgresRepositoryManagerWithDB(db)
	require.NoError(t, m.RunMigrations(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_GivesUpWhenDatabaseStaysDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	orig := pingBackoff
	pingBackoff = func() retry.Backoff { return retry.WithMaxRetries(1, retry.NewConstant(time.Millisecond)) }
	defer func() { pingBackoff = orig }()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	m := NewPostgresRepositoryManagerWithDB(db)
	err = m.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db not ready")
}

func TestMemory_SharesOneStore(t *testing.T) {
	m := NewMemoryRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background()))
	assert.Nil(t, m.Conn())
	assert.IsType(t, dbx.NoTx{}, m.Transactor())

	ctx := context.Background()
	account, err := m.Accounts(m.Conn()).Create(ctx, &models.Account{Email: "a@b.c", PasswordHash: "h"})
	require.NoError(t, err)

	got, err := m.Accounts(nil).GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)

	task, err := m.Tasks(nil).Create(ctx, &models.Task{Text: "t", OwnerID: account.ID})
	require.NoError(t, err)

	found, err := m.Tasks(m.Conn()).FindOne(ctx, account.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", found.Text)
	require.NoError(t, m.Close())
}
