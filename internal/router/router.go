package router

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"idorlab/internal/handler"
	"idorlab/internal/middleware"
	"idorlab/internal/model"
	"idorlab/internal/service"
)

// Services are the domain services the route guards consult.
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Projects service.ProjectService
	Notes    service.NoteService
}

// Handlers are the request handlers mounted on the routes.
type Handlers struct {
	Auth     *handler.AuthHandler
	Pages    *handler.PageHandler
	Projects *handler.ProjectHandler
	Notes    *handler.NoteHandler
}

// Register wires routes and middleware.
//
// Every route that addresses a record by id lives in a group whose guard loads
// and authorizes that record before the handler runs, so a route added to one
// of these groups cannot skip the ownership check.
func Register(e *echo.Echo, logger *zap.Logger, services Services, handlers Handlers) error {
	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	e.Renderer = renderer
	e.Validator = NewCustomValidator()
	e.HTTPErrorHandler = handler.NewErrorHandler(logger)

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	optional := middleware.OptionalSession(services.Auth)
	session := middleware.RequireSession(services.Auth, func(c echo.Context) {
		handler.AddFlash(c, "warning", middleware.LoginRequiredMessage)
	})

	// Public routes
	e.GET("/", handlers.Pages.Index, optional)
	e.GET("/login", handlers.Auth.ShowLogin, optional)
	e.POST("/login", handlers.Auth.Login)

	// Session-only routes
	e.GET("/logout", handlers.Auth.Logout, session)
	e.GET("/dashboard", handlers.Pages.Dashboard, session)

	// Owner-or-admin routes
	profile := e.Group("/profile", session, middleware.RequireAccess[*model.User]("id", services.Users.Profile))
	profile.GET("/:id", handlers.Pages.Profile)

	project := e.Group("/project", session, middleware.RequireAccess[*model.Project]("id", services.Projects.Get))
	project.GET("/:id", handlers.Projects.Show)
	project.GET("/edit/:id", handlers.Projects.Edit)
	project.POST("/edit/:id", handlers.Projects.Update)

	notes := e.Group("/notes", session, middleware.RequireAccess[*model.Note]("id", services.Notes.Get))
	notes.GET("/edit/:id", handlers.Notes.Edit)
	notes.POST("/edit/:id", handlers.Notes.Update)

	// Role-gated routes
	admin := e.Group("/admin", session, middleware.RequireRole(model.RoleAdmin))
	admin.GET("", handlers.Pages.Admin)

	return nil
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator reports field errors under their form names.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
