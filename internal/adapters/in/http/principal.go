package http

import (
	"errors"
	"fmt"
	"net/http"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// PrincipalIDHeader and PrincipalRoleHeader are set by the authentication gateway.
	PrincipalIDHeader   = "X-Principal-Id"
	PrincipalRoleHeader = "X-Principal-Role"

	principalContextKey = "ordering.principal"
)

// ErrUnauthenticated is returned when a request carries no usable principal.
var ErrUnauthenticated = errors.New("unauthenticated")

// PrincipalMiddleware resolves the caller from the gateway headers and stores it in the
// echo context. Requests without a valid id and role get 401 before any validation or
// handler runs.
func PrincipalMiddleware(skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if skipper(ctx) {
				return next(ctx)
			}

			principal, err := parsePrincipal(ctx.Request().Header)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: err.Error(),
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

func parsePrincipal(header http.Header) (kernel.Principal, error) {
	rawID := header.Get(PrincipalIDHeader)
	rawRole := header.Get(PrincipalRoleHeader)
	if rawID == "" || rawRole == "" {
		return kernel.Principal{}, fmt.Errorf("%w: %s and %s headers are required",
			ErrUnauthenticated, PrincipalIDHeader, PrincipalRoleHeader)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Principal{}, fmt.Errorf("%w: %s: %w", ErrUnauthenticated, PrincipalIDHeader, err)
	}
	role, err := kernel.ParseRole(rawRole)
	if err != nil {
		return kernel.Principal{}, fmt.Errorf("%w: %s: %w", ErrUnauthenticated, PrincipalRoleHeader, err)
	}

	principal, err := kernel.NewPrincipal(id, role)
	if err != nil {
		return kernel.Principal{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return principal, nil
}

func principalFrom(ctx echo.Context) (kernel.Principal, error) {
	principal, ok := ctx.Get(principalContextKey).(kernel.Principal)
	if !ok {
		return kernel.Principal{}, ErrUnauthenticated
	}
	return principal, nil
}
