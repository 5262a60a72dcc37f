package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/helpers"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
)

// JWTAuthMiddleware validates a Bearer token and stores the caller's id and
// role in the context. Tokens signed with anything but HMAC are rejected.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing bearer token.")
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}
		rawID, _ := claims["user_id"].(string)
		userID, err := uuid.Parse(rawID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// CurrentIdentity reads the authenticated caller from the context. The zero
// identity with ok=false means the request was unauthenticated.
func CurrentIdentity(c *gin.Context) (policy.Identity, bool) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return policy.Identity{}, false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return policy.Identity{}, false
	}
	role, _ := c.Get("role")
	roleName, _ := role.(string)
	return policy.Identity{ID: userID, Role: models.Role(roleName)}, true
}
