package handlers

import (
	"errors"
	"net/http"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/http/middleware"
	"cmsadmin/internal/services"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. CMS messages are
// passed through verbatim; transport details stay in the logs.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var ve domain.ValidationError
		errors.As(err, &ve)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"field": ve.Field})
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnsupported(err):
		respondError(c, http.StatusMethodNotAllowed, "unsupported", err.Error(), nil)
	case domain.IsRemote(err):
		msg, _ := domain.RemoteMessage(err)
		respondError(c, http.StatusUnprocessableEntity, "cms_error", msg, nil)
	case domain.IsTransport(err):
		_ = c.Error(err)
		respondError(c, http.StatusBadGateway, "cms_unreachable", "content service is unavailable", nil)
	case errors.Is(err, domain.ErrScreenClosed):
		respondError(c, http.StatusGone, "screen_closed", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsInternal(err):
		_ = c.Error(err)
		var ie domain.InternalError
		errors.As(err, &ie)
		respondError(c, http.StatusInternalServerError, "internal_error", ie.Error(), nil)
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
