package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "idorlab/internal/errors"
	"idorlab/internal/middleware"
	"idorlab/internal/model"
	"idorlab/internal/service"
)

// ProjectHandler serves project detail and edit pages. Every route is mounted
// behind the project access guard.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ProjectForm is the submitted project edit form.
type ProjectForm struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=500"`
	ImageURL    string `form:"image_url" validate:"max=500"`
}

// Show renders a project.
func (h *ProjectHandler) Show(c echo.Context) error {
	project, ok := middleware.Resource[*model.Project](c)
	if !ok {
		return apperrors.ErrForbidden
	}
	return render(c, http.StatusOK, "project_detail.html", echo.Map{"Project": project})
}

// Edit renders the edit form prefilled with the stored values.
func (h *ProjectHandler) Edit(c echo.Context) error {
	project, ok := middleware.Resource[*model.Project](c)
	if !ok {
		return apperrors.ErrForbidden
	}
	form := ProjectForm{Name: project.Name, Description: project.Description, ImageURL: project.ImageURL}
	return h.renderEdit(c, http.StatusOK, project, form, "")
}

// Update applies the submitted form to the project.
func (h *ProjectHandler) Update(c echo.Context) error {
	project, ok := middleware.Resource[*model.Project](c)
	if !ok {
		return apperrors.ErrForbidden
	}
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperrors.ErrNotAuthenticated
	}

	var form ProjectForm
	if err := c.Bind(&form); err != nil {
		return h.renderEdit(c, http.StatusUnprocessableEntity, project, form, "The submitted form is invalid.")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderEdit(c, http.StatusUnprocessableEntity, project, form, validationMessage(err))
	}

	updated, err := h.projectService.Update(c.Request().Context(), *caller, project.ID, service.ProjectInput{
		Name:        form.Name,
		Description: form.Description,
		ImageURL:    form.ImageURL,
	})
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return h.renderEdit(c, http.StatusUnprocessableEntity, project, form, validationMessage(err))
		}
		return err
	}

	AddFlash(c, "success", "Project updated successfully!")
	return c.Redirect(http.StatusFound, fmt.Sprintf("/project/%d", updated.ID))
}

func (h *ProjectHandler) renderEdit(c echo.Context, status int, project *model.Project, form ProjectForm, message string) error {
	return render(c, status, "project_edit.html", echo.Map{
		"Project": project,
		"Form":    form,
		"Error":   message,
	})
}
