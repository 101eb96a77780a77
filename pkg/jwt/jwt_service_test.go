package jwt

import (
	"PantryPal-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() JWTService {
	return &jwtService{secretKey: "test-secret", issuer: "PANTRYPAL"}
}

func TestTokenRoundTrip(t *testing.T) {
	service := testJWTService()

	token := service.GenerateTokenUser("8c9f2a54-1b8e-4f1c-9a34-6f2d1c0b7e55", 295470589)
	require.NotEmpty(t, token)

	userID, telegramUserID, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "8c9f2a54-1b8e-4f1c-9a34-6f2d1c0b7e55", userID)
	assert.Equal(t, int64(295470589), telegramUserID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	other := &jwtService{secretKey: "another-secret", issuer: "PANTRYPAL"}
	token := other.GenerateTokenUser("8c9f2a54-1b8e-4f1c-9a34-6f2d1c0b7e55", 1)

	_, _, err := testJWTService().GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, _, err := testJWTService().GetUserIDByToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
