// Package services contains server-side business logic. AccountService
// owns registration, login and token bookkeeping; TaskService owns the
// owner-scoped task operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// bcrypt ignores everything past 72 bytes and x/crypto refuses longer input.
const maxPasswordBytes = 72

type AccountService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	hasher      *auth.PasswordHasher
}

func NewAccountService(m repomanager.RepositoryManager, tokens *auth.TokenService, hasher *auth.PasswordHasher) *AccountService {
	return &AccountService{repomanager: m, tokens: tokens, hasher: hasher}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !dottedDomain(email) {
		return fmt.Errorf("%w: email is invalid", common.ErrValidation)
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, common.MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password is too long", common.ErrValidation)
	}
	return nil
}

// dottedDomain requires a domain like example.com; bare hosts are refused.
func dottedDomain(email string) bool {
	domain := email[strings.LastIndex(email, "@")+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && !strings.HasSuffix(domain, ".")
}

// Register creates an account and its first session token in one
// transaction. It returns the stored account and the token.
func (s *AccountService) Register(ctx context.Context, email, password string) (*models.Account, string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	var (
		account *models.Account
		token   string
	)
	err = s.repomanager.Transactor().InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		created, err := repo.Create(ctx, &models.Account{Email: email, PasswordHash: hash})
		if err != nil {
			return err
		}
		token, err = s.tokens.Issue(created.ID)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		if err := repo.AppendToken(ctx, created.ID, token); err != nil {
			return err
		}
		account = created
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// FindByCredentials returns the account whose password matches. Unknown
// email and wrong password both yield common.ErrAuthenticationFailed.
func (s *AccountService) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.repomanager.Accounts(s.repomanager.Conn()).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.CheckMissing(password)
			return nil, common.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.hasher.Check(account.PasswordHash, password) {
		return nil, common.ErrAuthenticationFailed
	}
	return account, nil
}

// Login verifies credentials and issues an additional session token.
// Previously issued tokens stay valid.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	account, err := s.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	if err := s.repomanager.Accounts(s.repomanager.Conn()).AppendToken(ctx, account.ID, token); err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Authenticate resolves a presented token to the account id it belongs to.
func (s *AccountService) Authenticate(ctx context.Context, token string) (string, error) {
	return s.tokens.Verify(ctx, token)
}

func (s *AccountService) Me(ctx context.Context, accountID string) (*models.Account, error) {
	return s.repomanager.Accounts(s.repomanager.Conn()).GetByID(ctx, accountID)
}

// Logout revokes token. Revoking an already removed token is not an error.
func (s *AccountService) Logout(ctx context.Context, accountID, token string) error {
	return s.repomanager.Accounts(s.repomanager.Conn()).RemoveToken(ctx, accountID, token)
}
