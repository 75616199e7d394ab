package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "idorlab/internal/errors"
	"idorlab/internal/middleware"
)

// NewErrorHandler returns the echo error handler that turns domain errors into
// pages. Forbidden and not-found pages carry fixed text only.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			writeFallback(c, logger, c.NoContent(status))
			return
		}

		var renderErr error
		switch status {
		case http.StatusUnauthorized:
			AddFlash(c, "warning", middleware.LoginRequiredMessage)
			renderErr = c.Redirect(http.StatusFound, "/login")
		case http.StatusForbidden:
			renderErr = render(c, status, "forbidden.html", nil)
		case http.StatusNotFound:
			renderErr = render(c, status, "not_found.html", nil)
		default:
			renderErr = render(c, status, "error.html", echo.Map{
				"Status":     status,
				"StatusText": http.StatusText(status),
				"Message":    message,
			})
		}
		writeFallback(c, logger, renderErr)
	}
}

// classify maps err to a status code and a message safe to show.
func classify(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, "Something went wrong. Please try again later."
		}
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		return httpErr.StatusCode, "Something went wrong. Please try again later."
	}
	return httpErr.StatusCode, httpErr.Message
}

func writeFallback(c echo.Context, logger *zap.Logger, err error) {
	if err == nil {
		return
	}
	logger.Error("render error page", zap.Error(err))
	if !c.Response().Committed {
		_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
