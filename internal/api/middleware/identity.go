package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nusapress/articles-api/internal/api/metrics"
	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/ports"
	"github.com/nusapress/articles-api/internal/core/service"
)

// userKey is the echo context key holding the resolved *domain.User.
const userKey = "auth_user"

// Identity resolves the request's bearer token into a user and stores it in
// the context. It runs on every route and never rejects a request: a
// missing header, wrong scheme, forged, expired or malformed token, and a
// token whose subject no longer exists all collapse uniformly into the
// anonymous state. Whether anonymous access is acceptable is decided
// downstream, per operation.
func Identity(tokens *service.TokenManager, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := resolve(c, tokens, users)
			if user != nil {
				metrics.IdentityResolutionsTotal.WithLabelValues("resolved").Inc()
				c.Set(userKey, user)
			} else {
				metrics.IdentityResolutionsTotal.WithLabelValues("anonymous").Inc()
			}
			return next(c)
		}
	}
}

func resolve(c echo.Context, tokens *service.TokenManager, users ports.UserRepository) *domain.User {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	claims, err := tokens.Verify(parts[1])
	if err != nil {
		return nil
	}

	user, err := users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// CurrentUser returns the resolved user for the request, or nil when the
// request is anonymous.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}
