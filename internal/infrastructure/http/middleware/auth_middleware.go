package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
)

// sessionContextKey is the echo context key for the authenticated session
const sessionContextKey = "session"

// AuthMiddleware validates access tokens and attaches the session to requests
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the bearer token and stores the session in the
// echo context. Handlers read it back with CurrentSession.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "missing authorization token",
			})
		}

		sess, err := m.authService.ValidateAccess(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid or expired token",
			})
		}

		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// CurrentSession returns the authenticated session stored by Authenticate
func CurrentSession(c echo.Context) (*auth.Session, bool) {
	sess, ok := c.Get(sessionContextKey).(*auth.Session)
	return sess, ok
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	cookie, err := c.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}
	return ""
}
