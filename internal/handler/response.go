package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"simplimed/internal/domain"
)

// ErrorEnvelope is the single error shape every endpoint returns. Success
// payloads are typed per endpoint (domain.UploadEnvelope,
// domain.AnalysisEnvelope); there is no third shape.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondError sends an error envelope with the given status code.
func RespondError(c *gin.Context, status int, errMsg string) {
	c.JSON(status, ErrorEnvelope{Success: false, Error: errMsg})
}

// MapDomainError translates domain errors to an HTTP status and a
// caller-facing error string.
func MapDomainError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		return http.StatusBadRequest, "No file uploaded"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "Invalid file type. Only PDF, text, and image files are allowed."
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "File too large. Maximum size is 10MB."
	case errors.Is(err, domain.ErrNoText):
		return http.StatusBadRequest, "No text provided for analysis"
	case errors.Is(err, domain.ErrAPIKeyMissing):
		return http.StatusBadRequest, "Groq API key not configured"
	case errors.Is(err, domain.ErrStorageFailed):
		return http.StatusInternalServerError, "Internal server error during upload or text extraction"
	default:
		return http.StatusInternalServerError, "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// 500-class causes are logged in full; the response carries only the
// sanitized message.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, msg)
}
