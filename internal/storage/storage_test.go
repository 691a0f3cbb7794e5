package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"cart", "wishlist", "userLanguage", "a.b-c_d"} {
		assert.NoError(t, ValidateKey(key), key)
	}
	for _, key := range []string{"", "../etc/passwd", "a/b", ".hidden", "with space"} {
		assert.ErrorIs(t, ValidateKey(key), apperrors.ErrInvalidInput, key)
	}
}
