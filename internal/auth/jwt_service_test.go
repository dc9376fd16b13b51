package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_Algorithms(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantErr   bool
	}{
		{name: "HS256", algorithm: "HS256"},
		{name: "HS384", algorithm: "HS384"},
		{name: "HS512", algorithm: "HS512"},
		{name: "RSA rejected", algorithm: "RS256", wantErr: true},
		{name: "unknown rejected", algorithm: "none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewJWTService("secret", tt.algorithm, time.Minute)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "HS256", 15*time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(42, "farida")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "farida", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	svc, err := NewJWTService("test-secret", "HS256", -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(1, "farida")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer, err := NewJWTService("secret-a", "HS256", time.Minute)
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", "HS256", time.Minute)
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(1, "farida")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_MalformedTokenRejected(t *testing.T) {
	svc, err := NewJWTService("test-secret", "HS256", time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenHasID(t *testing.T) {
	svc, err := NewJWTService("test-secret", "HS256", time.Minute)
	require.NoError(t, err)

	tokenID, token, err := svc.GenerateRefreshToken(7, "farida")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, extracted)

	// Access tokens carry no JTI.
	accessToken, err := svc.GenerateAccessToken(7, "farida")
	require.NoError(t, err)
	_, err = svc.ExtractTokenID(accessToken)
	assert.Error(t, err)
}
