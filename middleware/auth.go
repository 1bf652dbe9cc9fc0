package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"clothing-store/models"
	"clothing-store/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID     = "user_id"
	ContextUserEmail  = "user_email"
	ContextExternalID = "user_external_id"
	ContextAdmin      = "is_admin"

	AdminKeyHeader = "x-api-key"
)

func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, message := bearerClaims(c, tokens)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error:   message,
			})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid bearer token is present and
// carries on either way.
func OptionalAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := bearerClaims(c, tokens); claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// AdminKeyMiddleware requires the x-api-key header to match the configured
// key. An empty configured key locks the route.
func AdminKeyMiddleware(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validAdminKey(c, adminKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Error:   "Invalid or missing API key",
			})
			return
		}

		c.Set(ContextAdmin, true)
		c.Next()
	}
}

// AdminOrBearer admits either an admin key or a signed-in user.
func AdminOrBearer(adminKey string, tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validAdminKey(c, adminKey) {
			c.Set(ContextAdmin, true)
			c.Next()
			return
		}

		claims, message := bearerClaims(c, tokens)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error:   message,
			})
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func GetUserEmail(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextAdmin)
}

// HasAdminKey checks the header without aborting.
func HasAdminKey(c *gin.Context, adminKey string) bool {
	return validAdminKey(c, adminKey)
}

func validAdminKey(c *gin.Context, adminKey string) bool {
	presented := c.GetHeader(AdminKeyHeader)
	if adminKey == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(adminKey)) == 1
}

func bearerClaims(c *gin.Context, tokens *utils.TokenManager) (*utils.Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || strings.TrimSpace(tokenParts[1]) == "" {
		return nil, "Invalid authorization header format"
	}

	claims, err := tokens.ValidateAccessToken(strings.TrimSpace(tokenParts[1]))
	if err != nil {
		return nil, "Invalid or expired token"
	}
	return claims, ""
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set(ContextUserID, claims.ID)
	c.Set(ContextUserEmail, claims.Email)
	c.Set(ContextExternalID, claims.UserID)
}
