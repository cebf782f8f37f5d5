package middleware

import (
	"errors"
	"net/http"
	"strings"

	"lexbook/internal/common"
	"lexbook/internal/models"
	"lexbook/internal/repositories"
	"lexbook/internal/services"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "jwt"

// userContextKey is where Authenticate stores the resolved user on the
// echo context.
const userContextKey = "authenticated_user"

// TokenResolver extracts a raw token from a request. An empty string
// means this credential source is absent; the next resolver is tried.
type TokenResolver func(c echo.Context) string

// CookieResolver reads the session token from the named cookie.
func CookieResolver(name string) TokenResolver {
	return func(c echo.Context) string {
		cookie, err := c.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// BearerResolver reads the session token from an Authorization: Bearer
// header.
func BearerResolver() TokenResolver {
	return func(c echo.Context) string {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return ""
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return ""
		}
		return token
	}
}

// AuthMiddleware resolves session tokens into authenticated identities.
type AuthMiddleware struct {
	tokens    services.TokenService
	userRepo  repositories.UserRepository
	resolvers []TokenResolver
}

// NewAuthMiddleware builds the middleware with the default resolver
// order: session cookie first, then bearer header.
func NewAuthMiddleware(tokens services.TokenService, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
		resolvers: []TokenResolver{
			CookieResolver(SessionCookieName),
			BearerResolver(),
		},
	}
}

// Authenticate tries each resolver in order and short-circuits on the
// first token found. No token in any source is anonymous, not an error;
// downstream authorization decides whether that is acceptable. A token
// that is present but expired, malformed or referencing a missing user
// fails the request with 401.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var raw string
			for _, resolve := range m.resolvers {
				if raw = resolve(c); raw != "" {
					break
				}
			}
			if raw == "" {
				return next(c) // anonymous
			}

			claims, err := m.tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, services.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// A valid token for a deleted user must not authenticate.
			user, err := m.userRepo.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			c.Set(userContextKey, user)
			c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), user.ID)))

			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests. Must be registered after
// Authenticate.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := common.GetUserIDFromContext(c.Request().Context()); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			return next(c)
		}
	}
}

// UserFromEchoContext returns the user attached by Authenticate.
func UserFromEchoContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok
}
