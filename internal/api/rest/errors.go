package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ip-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/registry"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondAPIError responds with an error already shaped for the API, falling back to 422
func respondAPIError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusUnprocessableEntity, apiErr)
		return
	}
	respondValidationError(c, err.Error())
}

// respondUnauthorized responds with an unauthorized error
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError(message))
}

// respondInternalError responds with an internal server error and logs the cause
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondRegistryError maps a registry failure to its HTTP status.
// Rejections carry their registry code; anything else is an internal error.
func respondRegistryError(c *gin.Context, err error, message string) {
	if status, apiErr, ok := apierrors.FromRegistryError(err); ok {
		c.JSON(status, apiErr)
		return
	}

	if errors.Is(err, registry.ErrRolesNotInitialized) {
		logger.ErrorCtx(c.Request.Context(), err)
		c.JSON(http.StatusServiceUnavailable, apierrors.NewServiceError("Registry is not initialized"))
		return
	}

	respondInternalError(c, err, message)
}
