package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, claims, err := m.Issue("u1", "budi@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := m.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", parsed.Subject)
	assert.Equal(t, "budi@example.com", parsed.Email)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Issue("u1", "budi@example.com")
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, _, err := NewTokenManager("secret", -time.Minute).Issue("u1", "budi@example.com")
	assert.NoError(t, err)

	_, err = NewTokenManager("secret", -time.Minute).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "budi@example.com"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("rahasia")
	assert.NoError(t, err)
	assert.NotEqual(t, "rahasia", hash)
	assert.True(t, CheckPassword(hash, "rahasia"))
	assert.False(t, CheckPassword(hash, "salah"))
}
