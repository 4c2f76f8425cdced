package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrDuplicateEmail, ErrValidation, ErrInvalidIdentifier,
		ErrAuthenticationFailed, ErrUnauthorized, ErrInvalidToken, ErrRevoked, ErrInternal,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}

func TestErrors_WrappedValidationStillMatches(t *testing.T) {
	err := fmt.Errorf("%w: text is required", ErrValidation)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: text is required", err.Error())
}

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	assert.Equal(t, make([]byte, 6), b)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
