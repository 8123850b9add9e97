package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitease/splitease/internal/models"
)

// httpStatusFromError maps domain errors to HTTP status codes. Unknown
// errors, and consistency failures, surface as 500.
func httpStatusFromError(err error) int {
	var validation *models.ValidationError
	var notFound *models.NotFoundError
	var accessDenied *models.AccessDeniedError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders an error as JSON with the mapped status. Internal
// errors get logged and a generic message; the rest carry their own text.
func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
		message = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": message})
}
