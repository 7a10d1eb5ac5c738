package services

import (
	"fmt"
	"time"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenTTL is the fixed session lifetime.
const TokenTTL = 7 * 24 * time.Hour

// SessionClaims is what a session token carries: the account id and role.
type SessionClaims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Sign issues a 7-day HS256 token for the given account.
func (ts *TokenService) Sign(userID primitive.ObjectID, role models.Role) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

// Parse verifies a token and returns its claims.
func (ts *TokenService) Parse(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, apperr.Authenticationf("Invalid or expired session")
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, apperr.Authenticationf("Invalid or expired session")
	}
	return claims, nil
}

// Subject converts the claims' user id back to an ObjectID.
func (c *SessionClaims) Subject() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return primitive.NilObjectID, apperr.Authenticationf("Invalid or expired session")
	}
	return id, nil
}
