// Package accounts declares the credential store contract and its
// PostgreSQL implementation.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists accounts and the tokens issued to them.
type Repository interface {
	// Create stores a new account and fills in its ID. It returns
	// common.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByEmail and GetByID return common.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// AppendToken adds a token to the account's set, keeping the others.
	AppendToken(ctx context.Context, accountID, token string) error

	// RemoveToken deletes exactly that token. Removing a token the
	// account does not hold is not an error.
	RemoveToken(ctx context.Context, accountID, token string) error

	// HasToken reports whether the account currently holds token.
	HasToken(ctx context.Context, accountID, token string) (bool, error)
}
