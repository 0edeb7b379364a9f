package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
)

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondError maps service sentinel errors to HTTP statuses so handlers
// stay thin.
func RespondError(c *gin.Context, err error) {
	var vErr *pkgerrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{
			Message: "validation failed",
			Code:    "invalid_argument",
			Fields:  vErr.Fields,
		}})
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{
			Message: err.Error(),
			Code:    "invalid_argument",
		}})
	case errors.Is(err, pkgerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorEnvelope{Error: APIError{
			Message: err.Error(),
			Code:    "not_found",
		}})
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorEnvelope{Error: APIError{
			Message: "unauthorized",
			Code:    "unauthorized",
		}})
	default:
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{Error: APIError{
			Message: "internal error",
			Code:    "internal",
		}})
	}
}

func RespondBadRequest(c *gin.Context, err error) {
	msg := "bad request"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{
		Message: msg,
		Code:    "invalid_argument",
	}})
}
