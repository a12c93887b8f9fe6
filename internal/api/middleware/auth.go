package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/flowcrm/customer-system/internal/core/domain"
	"github.com/flowcrm/customer-system/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "session"

const userContextKey = "user"

// Auth resolves the caller's identity and injects the user into context.
// Browsers present the session cookie, which is looked up through the session
// gate; API clients present a bearer JWT, which is verified locally against
// the signing secret.
func Auth(auth ports.AuthService, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				user, err := auth.Authorize(c.Request().Context(), cookie.Value)
				if err != nil {
					return err
				}
				c.Set(userContextKey, user)
				c.Set("session_token", cookie.Value)
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}

			user, err := userFromToken(parts[1], jwtSecret)
			if err != nil {
				return domain.ErrUnauthenticated
			}
			c.Set(userContextKey, user)

			return next(c)
		}
	}
}

// AdminOnly gates a route on the admin capability. Must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(userContextKey).(*domain.User)
			if err := user.RequireAdmin(); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// UserFromContext returns the user injected by Auth, or nil when the
// middleware did not run.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

func userFromToken(token, jwtSecret string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return &domain.User{ID: sub, Username: username, IsAdmin: isAdmin}, nil
}
