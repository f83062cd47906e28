package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ip-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
)

// Denylist returns a gin middleware that rejects authenticated callers on the denylist.
// It must run after Auth; a nil denylist lets every caller through.
func Denylist(denylist access.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if denylist == nil || !ok || !denylist.IsDenied(caller) {
			c.Next()
			return
		}

		logger.WarnCtx(c.Request.Context(), "Denied caller rejected",
			zap.String("caller", caller.String()),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusForbidden,
			apierrors.NewForbiddenError(domain.ErrDeniedAccount.Message, domain.ErrDeniedAccount.Code))
	}
}
