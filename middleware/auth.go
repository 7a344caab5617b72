package middleware

import (
	"net/http"
	"os"
	"strings"

	"society-intake-api/config"
	"society-intake-api/models"
	"society-intake-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the admin identity inside the signed token. Identity and
// role travel with every request instead of living in server-side session
// state.
type Claims struct {
	AdminID      int    `json:"admin_id"`
	Email        string `json:"email"`
	IsSuperAdmin bool   `json:"is_super_admin"`
	jwt.RegisteredClaims
}

const denylistPrefix = "auth:denylist:"

// DenylistKey is the Redis key holding a revoked token id.
func DenylistKey(jti string) string {
	return denylistPrefix + jti
}

// TokenFromHeader extracts the bearer token, or "" when absent/malformed.
func TokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}
	return tokenString
}

// ParseToken validates the signature and expiry of a token string.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// AdminAuthMiddleware validates the admin token and loads the identity
// into the request context.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromHeader(c)
		if tokenString == "" {
			utils.Fail(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Logged-out tokens are denylisted until they expire.
		if config.Redis != nil && claims.ID != "" {
			if n, err := config.Redis.Exists(c.Request.Context(), DenylistKey(claims.ID)).Result(); err == nil && n > 0 {
				utils.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
				c.Abort()
				return
			}
		}

		var admin models.Admin
		if err := config.DB.Where("id = ? AND is_active = ?", claims.AdminID, true).First(&admin).Error; err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Admin account not found or inactive")
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Set("isSuperAdmin", claims.IsSuperAdmin)
		c.Set("tokenClaims", claims)

		c.Next()
	}
}

// RequireSuperAdmin gates admin-account management endpoints.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isSuper, exists := c.Get("isSuperAdmin")
		if !exists || !isSuper.(bool) {
			utils.Fail(c, http.StatusForbidden, "Access denied. Super admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}
