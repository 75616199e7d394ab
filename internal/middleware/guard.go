package middleware

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"idorlab/internal/auth"
	apperrors "idorlab/internal/errors"
	"idorlab/internal/model"
)

const resourceKey = "resource"

// Loader fetches the record named by id on behalf of caller. It must return
// apperrors.ErrNotFound for a missing record and apperrors.ErrForbidden when
// the caller may not act on it.
type Loader[T any] func(ctx context.Context, caller auth.Identity, id uint) (T, error)

// RequireAccess loads the record addressed by the path parameter param and
// only lets the request through when the loader authorized it. Attach it to a
// route group so that every route in the group is covered.
func RequireAccess[T any](param string, load Loader[T]) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := IdentityFrom(c)
			if !ok {
				return apperrors.ErrNotAuthenticated
			}

			id, err := strconv.ParseUint(c.Param(param), 10, 0)
			if err != nil || id == 0 {
				return apperrors.ErrNotFound
			}

			record, err := load(c.Request().Context(), *caller, uint(id))
			if err != nil {
				return err
			}
			c.Set(resourceKey, record)
			return next(c)
		}
	}
}

// RequireRole admits only callers holding role.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := IdentityFrom(c)
			if !ok {
				return apperrors.ErrNotAuthenticated
			}
			if auth.AuthorizeRole(caller.Role, role) != auth.Allow {
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}

// Resource returns the record authorized by RequireAccess. A handler mounted
// without the guard finds nothing here and must refuse the request.
func Resource[T any](c echo.Context) (T, bool) {
	record, ok := c.Get(resourceKey).(T)
	return record, ok
}
