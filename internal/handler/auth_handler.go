package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"idorlab/internal/middleware"
	"idorlab/internal/service"
)

// InvalidLoginMessage is shown for every failed login attempt.
const InvalidLoginMessage = "Invalid username or password."

// AuthHandler handles login and logout.
type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure, logger: logger}
}

// LoginForm is the submitted login form.
type LoginForm struct {
	Username string `form:"username" validate:"required,max=100"`
	Password string `form:"password" validate:"required"`
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return render(c, http.StatusOK, "login.html", nil)
}

// Login checks the submitted credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return h.loginFailed(c, form)
	}
	if err := c.Validate(&form); err != nil {
		return h.loginFailed(c, form)
	}

	session, err := h.authService.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return h.loginFailed(c, form)
		}
		return err
	}

	middleware.SetSessionCookie(c, session, h.cookieSecure)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout ends the caller's session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if identity, ok := middleware.IdentityFrom(c); ok {
		if err := h.authService.End(c.Request().Context(), identity.SessionID); err != nil {
			// The cookie is cleared anyway; the stored session expires on its TTL.
			h.logger.Error("end session", zap.Uint("user_id", identity.UserID), zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) loginFailed(c echo.Context, form LoginForm) error {
	return render(c, http.StatusOK, "login.html", echo.Map{
		"Error":    InvalidLoginMessage,
		"Username": form.Username,
	})
}
