package middleware

import (
	"errors"
	"net/http"
	"strings"

	"course_platform/internal/model"
	"course_platform/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// JWTAuthMiddleware creates a middleware for JWT authentication. All failures
// answer 401 with the same body; the specific kind (missing, invalid,
// expired) is only logged server-side.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn().Str("path", c.FullPath()).Str("kind", "missing").Msg("auth rejected")
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn().Str("path", c.FullPath()).Str("kind", "malformed").Msg("auth rejected")
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			kind := "invalid"
			if errors.Is(err, utils.ErrTokenExpired) {
				kind = "expired"
			}
			log.Warn().Str("path", c.FullPath()).Str("kind", kind).Msg("auth rejected")
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			log.Warn().Str("path", c.FullPath()).Str("kind", "invalid").Msg("auth rejected")
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		// Set user information in context
		c.Set(AuthUserKey, userID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}

// IdentityFromContext returns the authenticated principal set by
// JWTAuthMiddleware.
func IdentityFromContext(c *gin.Context) (model.Identity, bool) {
	idVal, ok := c.Get(AuthUserKey)
	if !ok {
		return model.Identity{}, false
	}
	userID, ok := idVal.(uuid.UUID)
	if !ok {
		return model.Identity{}, false
	}
	role, _ := c.Get(AuthRoleKey)
	roleStr, _ := role.(string)
	return model.Identity{UserID: userID, Role: roleStr}, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}
