package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"rentnest/server/internal/models"
)

// SessionCookie carries the session token for browser page loads; API
// clients send the same token as a bearer header.
const SessionCookie = "rentnest_session"

const accountKey = "account"

// Authenticate resolves the request's session, if any, and stores the
// account in the context. It never rejects: missing or broken sessions
// just leave the request anonymous.
func Authenticate(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if account := svc.Bootstrap(c.Request.Context(), extractToken(c)); account != nil {
			c.Set(accountKey, account)
		}
		c.Next()
	}
}

// RequireAccount is the one route guard. API routes answer 401; page
// routes redirect to the login view with the original path preserved.
func RequireAccount(redirectToLogin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentAccount(c) != nil {
			c.Next()
			return
		}
		if redirectToLogin {
			c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
}

// RequireRole guards an already-authenticated route by role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := CurrentAccount(c)
		if account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if account.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the signed-in account, or nil for anonymous
// requests.
func CurrentAccount(c *gin.Context) *models.Account {
	if v, ok := c.Get(accountKey); ok {
		if account, ok := v.(*models.Account); ok {
			return account
		}
	}
	return nil
}

// ExtractToken returns the request's session token: Authorization bearer
// header first, session cookie second.
func ExtractToken(c *gin.Context) string {
	return extractToken(c)
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
