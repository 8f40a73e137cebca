package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	apperrors "chronotask/internal/errors"
	"chronotask/internal/model"
)

// ContextUserKey is the echo context key the guard stores the resolved user under.
const ContextUserKey = "currentUser"

// contextClaimsKey is where the JWT middleware stores the parsed claims.
const contextClaimsKey = "user"

// UserResolver loads the account a session token points at.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Guard finishes authentication after token verification: it resolves the
// token subject to a live account and rejects tokens that predate the
// account's last password change.
type Guard struct {
	users UserResolver
}

// NewGuard creates a route guard backed by the given resolver.
func NewGuard(users UserResolver) *Guard {
	return &Guard{users: users}
}

// Middleware must run after the JWT middleware on protected routes.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(contextClaimsKey).(*SessionClaims)
			if !ok {
				return apperrors.ErrUnauthenticated
			}

			user, err := g.users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				// The account behind the token no longer exists.
				return apperrors.ErrUnauthenticated
			}

			if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
				return apperrors.ErrStalePassword
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user attached by the guard.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}
