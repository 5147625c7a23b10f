package helper_test

import (
	"testing"
	"time"

	"github.com/AnnaHort/phonebook-auth/internal/helper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	tokenStr, err := auth.GenerateToken(7, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := auth.VerifyToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.InDelta(t, float64(time.Now().Add(24*time.Hour).Unix()), claims.Expiry, 5)
}

func TestVerifyTokenBearerPrefix(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	tokenStr, err := auth.GenerateToken(7, "a@x.com")
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + tokenStr)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	tokenStr, err := helper.SetupAuth("secret-a").GenerateToken(7, "a@x.com")
	require.NoError(t, err)

	_, err = helper.SetupAuth("secret-b").VerifyToken(tokenStr)
	assert.Error(t, err)
}

func TestVerifyTokenMissing(t *testing.T) {
	auth := helper.SetupAuth("test-secret")
	_, err := auth.VerifyToken("")
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"email":   "a@x.com",
		"iat":     time.Now().Add(-48 * time.Hour).Unix(),
		"exp":     time.Now().Add(-24 * time.Hour).Unix(),
	})
	tokenStr, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.VerifyToken(tokenStr)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsUnsignedAlg(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 7,
		"email":   "a@x.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.VerifyToken(tokenStr)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresInputs(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	_, err := auth.GenerateToken(0, "a@x.com")
	assert.Error(t, err)

	_, err = auth.GenerateToken(7, "")
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	hashed, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	assert.NoError(t, auth.VerifyPassword("secret1", hashed))
	assert.Error(t, auth.VerifyPassword("wrong", hashed))
}

func TestExtractBearer(t *testing.T) {
	assert.Equal(t, "abc", helper.ExtractBearer("abc"))
	assert.Equal(t, "abc", helper.ExtractBearer("Bearer abc"))
	assert.Equal(t, "abc", helper.ExtractBearer("bearer abc"))
	assert.Equal(t, "abc", helper.ExtractBearer("  Bearer abc  "))
	assert.Equal(t, "", helper.ExtractBearer(""))
}
