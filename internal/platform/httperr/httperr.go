// Package httperr maps domain errors to HTTP responses in one place so
// every handler reports failures the same way.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsportal/internal/apperr"
)

// Respond writes the HTTP response for err. The taxonomy is fixed:
// NotFound -> 404, unique violations and validation failures -> 400,
// missing credentials -> 401, denied -> 403, anything else -> 500 with
// the cause logged but not leaked to the client.
func Respond(c *gin.Context, err error) {
	switch {
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsUniqueViolation(err), apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, apperr.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	default:
		slog.Error("unhandled error", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
