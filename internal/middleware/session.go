package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"idorlab/internal/auth"
	apperrors "idorlab/internal/errors"
	"idorlab/internal/service"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session"

	identityKey = "identity"
)

// LoginRequiredMessage is flashed when an anonymous caller hits a protected page.
const LoginRequiredMessage = "You must log in to access this page."

// sessionLookupError marks failures that are not the caller's fault, such as
// an unreachable session store.
type sessionLookupError struct {
	err error
}

func (e *sessionLookupError) Error() string { return e.err.Error() }
func (e *sessionLookupError) Unwrap() error { return e.err }

// RequireSession resolves the caller from the session cookie and stores the
// identity in the request context. Anonymous callers are sent to /login.
func RequireSession(authService service.AuthService, onAnonymous func(c echo.Context)) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     identityKey,
		TokenLookup:    "cookie:" + SessionCookieName,
		ParseTokenFunc: parseSession(authService),
		ErrorHandler: func(c echo.Context, err error) error {
			var lookupErr *sessionLookupError
			if errors.As(err, &lookupErr) {
				return lookupErr.err
			}
			ClearSessionCookie(c)
			if onAnonymous != nil {
				onAnonymous(c)
			}
			return c.Redirect(http.StatusFound, "/login")
		},
	})
}

// OptionalSession resolves the caller when a valid session cookie is present
// and lets every other request through as anonymous.
func OptionalSession(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             identityKey,
		TokenLookup:            "cookie:" + SessionCookieName,
		ParseTokenFunc:         parseSession(authService),
		ContinueOnIgnoredError: true,
		ErrorHandler: func(echo.Context, error) error {
			return nil
		},
	})
}

func parseSession(authService service.AuthService) func(c echo.Context, token string) (interface{}, error) {
	return func(c echo.Context, token string) (interface{}, error) {
		identity, err := authService.CurrentIdentity(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotAuthenticated) {
				return nil, err
			}
			return nil, &sessionLookupError{err: err}
		}
		return identity, nil
	}
}

// IdentityFrom returns the caller resolved by RequireSession.
func IdentityFrom(c echo.Context) (*auth.Identity, bool) {
	identity, ok := c.Get(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

// SetSessionCookie writes the session token cookie.
func SetSessionCookie(c echo.Context, session *service.Session, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
