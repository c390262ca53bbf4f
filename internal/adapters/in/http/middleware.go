package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"smartdelivery/internal/pkg/auth"
)

const principalContextKey = "principal"

// JWTMiddleware verifies the bearer token and stores the principal on the
// request context.
func JWTMiddleware(tokens *auth.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return ctx.JSON(http.StatusUnauthorized, errorBody{
					Error: "missing bearer token",
					Code:  "UNAUTHORIZED",
				})
			}

			principal, err := tokens.Verify(strings.TrimPrefix(header, prefix))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, errorBody{
					Error: "invalid or expired token",
					Code:  "UNAUTHORIZED",
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// currentPrincipal returns the verified principal set by JWTMiddleware.
func currentPrincipal(ctx echo.Context) (auth.Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(auth.Principal)
	return principal, ok
}

// requireRole rejects requests whose token carries a different role. When it
// returns false the error response has already been written.
func requireRole(ctx echo.Context, role string) (auth.Principal, bool) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		_ = ctx.JSON(http.StatusUnauthorized, errorBody{
			Error: "missing bearer token",
			Code:  "UNAUTHORIZED",
		})
		return auth.Principal{}, false
	}
	if principal.Role != role {
		_ = ctx.JSON(http.StatusForbidden, errorBody{
			Error: "insufficient role",
			Code:  "NOT_AUTHORIZED",
		})
		return auth.Principal{}, false
	}
	return principal, true
}
