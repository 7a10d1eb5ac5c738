package services

import (
	"testing"
	"time"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundtrip(t *testing.T) {
	ts := NewTokenService("test-secret")
	userID := primitive.NewObjectID()

	token, err := ts.Sign(userID, models.RoleAdmin)
	require.NoError(t, err)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	subject, err := claims.Subject()
	require.NoError(t, err)
	assert.Equal(t, userID, subject)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenTTL.Seconds(), ttl.Seconds(), 5)
}

func TestTokenWrongSecret(t *testing.T) {
	ts := NewTokenService("test-secret")
	token, err := ts.Sign(primitive.NewObjectID(), models.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenService("other-secret").Parse(token)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}

func TestTokenExpired(t *testing.T) {
	ts := NewTokenService("test-secret")

	claims := SessionClaims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ts.Parse(token)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}

func TestTokenGarbage(t *testing.T) {
	ts := NewTokenService("test-secret")
	_, err := ts.Parse("not-a-token")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}
