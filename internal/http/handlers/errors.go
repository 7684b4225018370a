package handlers

import (
	"errors"
	"net/http"

	"spacecrew/internal/domain"
	"spacecrew/internal/http/middleware"
	"spacecrew/internal/utils"
	"spacecrew/internal/validation"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
		Message:   message,
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsUnrecognizedEnum(err):
		var enumErr domain.UnrecognizedEnumError
		errors.As(err, &enumErr)
		respondError(c, http.StatusBadRequest, "unrecognized_enum_value", err.Error(), gin.H{
			"field":   enumErr.Field,
			"value":   enumErr.Value,
			"allowed": enumErr.Allowed,
		})
	case domain.IsValidation(err):
		var details any
		if d := validation.Details(err); len(d) > 0 {
			details = d
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case domain.IsMalformedPatch(err):
		respondError(c, http.StatusBadRequest, "invalid_patch", err.Error(), nil)
	case domain.IsPatchFailure(err):
		respondError(c, http.StatusUnprocessableEntity, "patch_failed", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", "unhandled error", "path", c.Request.URL.Path, "error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
