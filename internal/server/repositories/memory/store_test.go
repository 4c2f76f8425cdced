package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ accounts.Repository = (*AccountRepository)(nil)
	_ tasks.Repository    = (*TaskRepository)(nil)
)

func TestAccounts_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Accounts()

	a, err := repo.Create(ctx, &models.Account{Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)

	byEmail, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", byID.PasswordHash)
	assert.Empty(t, byID.Tokens)

	_, err = repo.Create(ctx, &models.Account{Email: "a@b.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	_, err = repo.GetByEmail(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAccounts_Tokens(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Accounts()

	a, err := repo.Create(ctx, &models.Account{Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, repo.AppendToken(ctx, a.ID, "t1"))
	require.NoError(t, repo.AppendToken(ctx, a.ID, "t2"))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.AccountToken{{Access: "auth", Token: "t1"}, {Access: "auth", Token: "t2"}}, got.Tokens)

	require.NoError(t, repo.RemoveToken(ctx, a.ID, "t1"))
	require.NoError(t, repo.RemoveToken(ctx, a.ID, "t1"))

	ok, err := repo.HasToken(ctx, a.ID, "t1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repo.HasToken(ctx, a.ID, "t2")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, repo.AppendToken(ctx, "missing", "t"), common.ErrNotFound)
}

func TestAccounts_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Accounts()

	a, err := repo.Create(ctx, &models.Account{Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.NoError(t, repo.AppendToken(ctx, a.ID, "t1"))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	got.Tokens[0].Token = "tampered"

	ok, err := repo.HasToken(ctx, a.ID, "t1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTasks_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Tasks()

	a1, err := repo.Create(ctx, &models.Task{OwnerID: "A", Text: "first"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Task{OwnerID: "B", Text: "other"})
	require.NoError(t, err)
	a2, err := repo.Create(ctx, &models.Task{OwnerID: "A", Text: "second"})
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, "A")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{a1.ID, a2.ID}, []string{list[0].ID, list[1].ID})

	_, err = repo.FindOne(ctx, "B", a1.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Update(ctx, &models.Task{ID: a1.ID, OwnerID: "B", Text: "hijack"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Delete(ctx, "B", a1.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	still, err := repo.FindOne(ctx, "A", a1.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", still.Text)
}

func TestTasks_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Tasks()

	created, err := repo.Create(ctx, &models.Task{OwnerID: "A", Text: "x"})
	require.NoError(t, err)

	at := int64(42)
	updated, err := repo.Update(ctx, &models.Task{ID: created.ID, OwnerID: "A", Text: "y", Completed: true, CompletedAt: &at})
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Text)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, int64(42), *updated.CompletedAt)

	deleted, err := repo.Delete(ctx, "A", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", deleted.Text)

	list, err := repo.ListByOwner(ctx, "A")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Tasks().Create(ctx, &models.Task{OwnerID: "A", Text: "t"})
			_, _ = s.Tasks().ListByOwner(ctx, "A")
		}()
	}
	wg.Wait()

	list, err := s.Tasks().ListByOwner(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
