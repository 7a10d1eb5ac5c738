package handlers

import (
	"net/http"
	"strings"

	"dukaan/internal/models"
	"dukaan/internal/services"

	"github.com/gin-gonic/gin"
)

const claimsKey = "sessionClaims"

// RequireAuth extracts the session token from the cookie or the
// Authorization header and attaches its claims to the request.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("token")
		if token == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Authentication required"})
			return
		}

		claims, err := h.tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin gates admin-only operations on the role claim.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin lets a request through only when the route's user id
// parameter matches the caller, or the caller is an admin.
func (h *Handler) RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Authentication required"})
			return
		}
		if claims.Role != models.RoleAdmin && claims.UserID != c.Param(param) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}
		c.Next()
	}
}

// requireSelfOrAdminBody is the identity check for routes whose user id
// arrives in the request body instead of the path. Writes the rejection and
// returns false when the caller may not act for userID.
func requireSelfOrAdminBody(c *gin.Context, userID string) bool {
	claims := currentClaims(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Authentication required"})
		return false
	}
	if claims.Role != models.RoleAdmin && claims.UserID != userID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return false
	}
	return true
}

func currentClaims(c *gin.Context) *services.SessionClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.SessionClaims)
	return claims
}
