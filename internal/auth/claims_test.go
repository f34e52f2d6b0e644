package auth

import (
	"testing"
	"time"

	"github.com/Tedomi2525/My-project/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndDecodeVerified(t *testing.T) {
	token, err := IssueToken("s3cret", 42, types.RoleTeacher, time.Hour)
	require.NoError(t, err)

	cred, err := DecodeClaims(token, "s3cret", time.Now())
	require.NoError(t, err)
	assert.Equal(t, token, cred.Token)
	assert.Equal(t, 42, cred.UserID)
	assert.Equal(t, types.RoleTeacher, cred.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), cred.ExpiresAt, 5*time.Second)
}

func TestDecodeUnverifiedChecksExpiry(t *testing.T) {
	token, err := IssueToken("whatever", 5, types.RoleStudent, time.Hour)
	require.NoError(t, err)

	cred, err := DecodeClaims(token, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, cred.UserID)

	_, err = DecodeClaims(token, "", time.Now().Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestDecodeClaimsFailures(t *testing.T) {
	expired, err := IssueToken("s3cret", 1, types.RoleAdmin, -time.Minute)
	require.NoError(t, err)
	valid, err := IssueToken("s3cret", 1, types.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"expired verified", expired, "s3cret", ErrSessionExpired},
		{"expired unverified", expired, "", ErrSessionExpired},
		{"wrong secret", valid, "other", ErrInvalidToken},
		{"opaque verified", "opaque-token", "s3cret", ErrMalformedToken},
		{"opaque unverified", "opaque-token", "", ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClaims(tt.token, tt.secret, time.Now())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeClaimsPrefersUserIDClaim(t *testing.T) {
	claims := Claims{
		Role:             "Admin",
		UserID:           9,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	cred, err := DecodeClaims(token, "k", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 9, cred.UserID)
	assert.Equal(t, types.RoleAdmin, cred.Role)
	assert.True(t, cred.ExpiresAt.IsZero())
}

func TestIssueTokenNeedsSecret(t *testing.T) {
	_, err := IssueToken("", 1, types.RoleAdmin, time.Hour)
	assert.Error(t, err)
}
