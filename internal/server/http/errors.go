package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	msgServerError         = "Server error"
	msgUnauthenticated     = "Please authenticate."
	msgForbidden           = "Access denied."
	msgPostNotFound        = "Post not found"
	msgNotFound            = "Not found"
	msgInvalidStatus       = `Invalid status. Must be either "draft" or "published"`
	msgInvalidCredentials  = "Invalid credentials"
	msgEmailTaken          = "Email already registered"
	msgRefreshRequired     = "Refresh token required"
	msgInvalidRefreshToken = "Invalid refresh token"
	msgInvalidBody         = "Invalid request body"
	msgValidationFailed    = "Validation failed"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func abortWithMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// writeError maps a service error onto the HTTP error taxonomy. Anything
// unrecognised is logged with the request id and reported as a bare 500.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		details := make(map[string]string, len(verrs))
		for field, e := range verrs {
			details[field] = e.Error()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgValidationFailed, Details: details})
	case errors.Is(err, common.ErrorValidation):
		abortWithMessage(c, http.StatusBadRequest, msgValidationFailed)
	case errors.Is(err, common.ErrorAlreadyExists):
		abortWithMessage(c, http.StatusBadRequest, msgEmailTaken)
	case errors.Is(err, common.ErrorUnauthorized):
		abortWithMessage(c, http.StatusUnauthorized, msgUnauthenticated)
	case errors.Is(err, common.ErrorForbidden):
		abortWithMessage(c, http.StatusForbidden, msgForbidden)
	case errors.Is(err, common.ErrorNotFound):
		abortWithMessage(c, http.StatusNotFound, msgPostNotFound)
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"error", err, "path", c.FullPath(), "request_id", GetRequestID(c))
		abortWithMessage(c, http.StatusInternalServerError, msgServerError)
	}
}
