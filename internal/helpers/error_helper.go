package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500 with a generic message so internals never
// leak to clients.
func RespondWithDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		RespondWithError(c, http.StatusForbidden, "You are not allowed to perform this action.")
	case errors.Is(err, domain.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, domain.ErrSoldOut):
		RespondWithError(c, http.StatusConflict, err.Error())
	case domain.IsConflict(err):
		RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTicketInactive):
		RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, "Something went wrong.")
	}
}
