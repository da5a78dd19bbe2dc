package handlers

import (
	"net/http"

	"transcribe-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the generic failure response
// used at the API boundary.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Status, errors.ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
		Error:   errors.ErrInternalServer.Code,
		Message: err.Error(),
	})
}
