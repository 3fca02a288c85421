package controllers

import (
	"log/slog"
	"net/http"

	"hospitaladmin/internal/delivery/http/helpers"
)

// respondError writes the mapped error response and logs server-side failures.
func respondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if status, _ := helpers.StatusForError(err); status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteServiceError(w, err)
}
