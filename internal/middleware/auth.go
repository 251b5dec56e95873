package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"pg-be-svc/pkg/utils"
)

// Roles recognized at the API boundary
const (
	RoleAdmin    = "admin"
	RoleResident = "resident"
)

// Context keys for the resolved caller identity
const (
	ContextUserID = "auth_user_id"
	ContextEmail  = "auth_email"
	ContextRole   = "auth_role"
)

// AuthClaims is the JWT payload issued by the identity provider
type AuthClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthRequired validates the Bearer token and stores the resolved caller
// identity on the request context. Unresolved identity fails with 401.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRole rejects callers whose resolved role does not match
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := c.GetString(ContextRole)
		if callerRole != role {
			utils.ForbiddenResponse(c, fmt.Sprintf("This operation requires the %s role", role))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerEmail returns the authenticated caller's email
func CallerEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}
