package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "idorlab/internal/errors"
	"idorlab/internal/middleware"
	"idorlab/internal/model"
	"idorlab/internal/service"
)

// NoteHandler serves the note edit page behind the note access guard.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// NoteForm is the submitted note edit form.
type NoteForm struct {
	Content string `form:"content" validate:"required,max=1000"`
}

// Edit renders the edit form prefilled with the stored content.
func (h *NoteHandler) Edit(c echo.Context) error {
	note, ok := middleware.Resource[*model.Note](c)
	if !ok {
		return apperrors.ErrForbidden
	}
	return h.renderEdit(c, http.StatusOK, note, NoteForm{Content: note.Content}, "")
}

// Update stores the submitted note content.
func (h *NoteHandler) Update(c echo.Context) error {
	note, ok := middleware.Resource[*model.Note](c)
	if !ok {
		return apperrors.ErrForbidden
	}
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperrors.ErrNotAuthenticated
	}

	var form NoteForm
	if err := c.Bind(&form); err != nil {
		return h.renderEdit(c, http.StatusUnprocessableEntity, note, form, "The submitted form is invalid.")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderEdit(c, http.StatusUnprocessableEntity, note, form, validationMessage(err))
	}

	if _, err := h.noteService.Update(c.Request().Context(), *caller, note.ID, form.Content); err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return h.renderEdit(c, http.StatusUnprocessableEntity, note, form, validationMessage(err))
		}
		return err
	}

	AddFlash(c, "success", "Note updated successfully!")
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *NoteHandler) renderEdit(c echo.Context, status int, note *model.Note, form NoteForm, message string) error {
	return render(c, status, "note_edit.html", echo.Map{
		"Note":  note,
		"Form":  form,
		"Error": message,
	})
}
