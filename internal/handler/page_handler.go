package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "idorlab/internal/errors"
	"idorlab/internal/middleware"
	"idorlab/internal/model"
	"idorlab/internal/service"
)

// PageHandler serves the landing page, dashboard, profiles and admin panel.
type PageHandler struct {
	userService service.UserService
}

// NewPageHandler creates a new page handler.
func NewPageHandler(userService service.UserService) *PageHandler {
	return &PageHandler{userService: userService}
}

// Index renders the public landing page.
func (h *PageHandler) Index(c echo.Context) error {
	return render(c, http.StatusOK, "index.html", nil)
}

// Dashboard lists the records visible to the caller.
func (h *PageHandler) Dashboard(c echo.Context) error {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperrors.ErrNotAuthenticated
	}

	dashboard, err := h.userService.Dashboard(c.Request().Context(), *caller)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "dashboard.html", echo.Map{"Dashboard": dashboard})
}

// Profile renders the user authorized by the profile guard.
func (h *PageHandler) Profile(c echo.Context) error {
	user, ok := middleware.Resource[*model.User](c)
	if !ok {
		return apperrors.ErrForbidden
	}
	return render(c, http.StatusOK, "profile.html", echo.Map{"User": user})
}

// Admin renders the admin panel. The route group enforces the admin role.
func (h *PageHandler) Admin(c echo.Context) error {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperrors.ErrNotAuthenticated
	}

	users, err := h.userService.ListUsers(c.Request().Context(), *caller)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "admin_panel.html", echo.Map{"Users": users})
}
