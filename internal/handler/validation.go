package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "idorlab/internal/errors"
)

// validationMessage turns a form validation failure into a sentence for the
// page. Field names come from the form tags registered on the validator.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s is required.", fe.Field()))
			case "max":
				msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param()))
			default:
				msgs = append(msgs, fmt.Sprintf("%s is invalid.", fe.Field()))
			}
		}
		return strings.Join(msgs, " ")
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field == "" {
			return validationErr.Message
		}
		return fmt.Sprintf("%s %s.", validationErr.Field, validationErr.Message)
	}
	return "The submitted form is invalid."
}
