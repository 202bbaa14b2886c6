package middleware

import (
	"testing"

	"lms/config"
	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-signing-key"}

	token, err := GenerateJWT(42, "Ada", models.RoleInstructor, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, models.RoleInstructor, claims["role"])
	assert.Equal(t, "ada@example.com", claims["email"])
}

func TestParseTokenRejectsTampered(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-signing-key"}

	token, err := GenerateJWT(7, "Eve", models.RoleStudent, "eve@example.com")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	// A token signed with a different key must not verify
	config.AppConfig.JWTKey = "other-key"
	_, err = ParseToken(token)
	assert.Error(t, err)
}
