package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"screenguard/internal/domain"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// RespondError sends an error response with a human-readable detail string.
func RespondError(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorBody{Detail: detail})
}

// MapDomainError translates pipeline errors to HTTP status codes and
// caller-facing detail strings.
func MapDomainError(err error) (status int, detail string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "unsupported file format; use PNG, JPG, JPEG, BMP, or TIFF"
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "image file not found on server"
	case errors.Is(err, domain.ErrOCREngineUnavailable):
		return http.StatusInternalServerError, "OCR engine is not available on the server"
	case errors.Is(err, domain.ErrOCRFailed):
		return http.StatusInternalServerError, "OCR extraction failed"
	case errors.Is(err, domain.ErrModelOutputMalformed):
		return http.StatusInternalServerError, "failed to process the LLM response"
	case errors.Is(err, domain.ErrModelUnreachable):
		return http.StatusInternalServerError, "failed to communicate with the LLM"
	default:
		return http.StatusInternalServerError, "an unexpected internal error occurred"
	}
}

// HandleError maps a pipeline error and sends the error response. Internal
// detail is logged server-side, never leaked to the caller.
func HandleError(c *gin.Context, err error) {
	status, detail := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] internal error: %v", requestID, err)
	}
	RespondError(c, status, detail)
}
