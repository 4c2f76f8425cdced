package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// TokenStore answers whether an account still holds a token. The account
// repository implements it.
type TokenStore interface {
	HasToken(ctx context.Context, accountID, token string) (bool, error)
}

// TokenService issues signed tokens and verifies presented ones. A token is
// valid only if its signature checks out and the store still lists it for
// the account, so logout revokes it even though it never expires.
type TokenService struct {
	secretKey []byte
	store     TokenStore
	now       func() time.Time
}

func NewTokenService(secretKey string, store TokenStore) *TokenService {
	return &TokenService{secretKey: []byte(secretKey), store: store, now: time.Now}
}

// Issue signs a new token for accountID. The caller is responsible for
// persisting it with the account.
func (s *TokenService) Issue(accountID string) (string, error) {
	return GenerateToken(accountID, s.secretKey, s.now())
}

// Verify returns the account id bound to token. It fails with
// common.ErrInvalidToken for a bad signature or payload and with
// common.ErrRevoked when no account holds the token any more.
func (s *TokenService) Verify(ctx context.Context, token string) (string, error) {
	accountID, err := GetAccountIDFromToken(token, s.secretKey)
	if err != nil {
		return "", err
	}

	ok, err := s.store.HasToken(ctx, accountID, token)
	if err != nil {
		return "", fmt.Errorf("token lookup: %w", err)
	}
	if !ok {
		return "", common.ErrRevoked
	}

	return accountID, nil
}
