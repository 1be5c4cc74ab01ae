package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kavinduj/workboard/internal/domain/models"
)

// response is the envelope every mutating endpoint returns. Callers display
// the message verbatim and refresh views only on success.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, response{Success: true, Message: message, Data: data})
}

// fail maps a service error onto an HTTP status and the user-facing
// message. notFoundMsg names the entity the endpoint was resolving, since
// the sentinel itself does not.
func fail(c *gin.Context, err error, notFoundMsg string) {
	var validation models.ValidationError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, response{Message: validation.Error()})
	case errors.Is(err, models.ErrDuplicateID):
		c.JSON(http.StatusConflict, response{Message: "Worker ID already exists"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, response{Message: notFoundMsg})
	default:
		c.JSON(http.StatusInternalServerError, response{Message: err.Error()})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, response{Message: message})
}
