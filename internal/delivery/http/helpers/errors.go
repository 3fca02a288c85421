package helpers

import (
	"errors"
	"net/http"

	"hospitaladmin/internal/domain"
)

// StatusForError maps a service error to its HTTP status and API error code.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrMissingSelection),
		errors.Is(err, domain.ErrOverlap),
		errors.Is(err, domain.ErrDuplicateSchedule),
		errors.Is(err, domain.ErrUnknownDoctor),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrBookedSlotImmutable):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrUpstreamPersistence):
		return http.StatusBadGateway, ErrCodeUpstreamFailure
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteServiceError writes the error response for err. Invalid ids read as "Invalid ID" and
// internal failures hide the underlying message.
func WriteServiceError(w http.ResponseWriter, err error) {
	status, code := StatusForError(err)
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		message = "Invalid ID"
	case status == http.StatusInternalServerError:
		message = "internal server error"
	}
	WriteJSONError(w, status, code, message)
}
