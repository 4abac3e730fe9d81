package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secreto", "user-1", "maria", "admin", "farmacia-api", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "farmacia-api", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secreto", "user-1", "maria", "admin", "farmacia-api", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secreto", "user-1", "maria", "empleado", "farmacia-api", -1)
	require.NoError(t, err)

	_, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u", "n", "admin", "i", 5)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
