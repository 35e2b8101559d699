package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/errors"
)

// respondError writes an executor error. Anything that is not an *APIError
// is reported as a generic internal error.
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		_ = c.Error(err)
		respondInternalError(c, "Internal server error")
		return
	}

	c.JSON(apiErr.StatusCode(), apiErr)
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondInternalError responds with an internal server error
func respondInternalError(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message, details...))
}
