package utils_test

import (
	"testing"

	"github.com/AnnaHort/phonebook-auth/internal/helper/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGravatarURL(t *testing.T) {
	// md5("a@x.com") = 743173788aa9166801df2e18f0e7ff24
	got := utils.GravatarURL("a@x.com")
	assert.Equal(t, "https://www.gravatar.com/avatar/743173788aa9166801df2e18f0e7ff24?s=200&r=pg&d=identicon", got)
}

func TestGravatarURLNormalizes(t *testing.T) {
	assert.Equal(t, utils.GravatarURL("a@x.com"), utils.GravatarURL("  A@X.COM  "))
}

func TestRandomToken(t *testing.T) {
	tok, err := utils.RandomToken(32)
	require.NoError(t, err)
	assert.Len(t, tok, 64)

	other, err := utils.RandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestRandomTokenInvalidLength(t *testing.T) {
	_, err := utils.RandomToken(0)
	assert.Error(t, err)
}
