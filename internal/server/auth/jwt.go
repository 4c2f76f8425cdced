// Package auth issues and verifies bearer tokens, hashes passwords, and
// carries the resolved caller identity through request contexts.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload: the standard claims plus the account id and
// the token scope.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"_id"`
	Access    string `json:"access"`
}

// GenerateToken signs an "auth" scoped HS256 token for accountID. Tokens do
// not expire; each carries a random jti so two tokens issued in the same
// second still differ.
func GenerateToken(accountID string, secretKey []byte, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
		AccountID: accountID,
		Access:    common.ScopeAuth,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken checks the signature and payload of tokenString and
// returns the account id it was issued for. Every failure is reported as
// common.ErrInvalidToken.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.AccountID == "" || claims.Access != common.ScopeAuth {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
