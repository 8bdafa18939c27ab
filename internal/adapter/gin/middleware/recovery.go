package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-service/internal/usecase/crud"
	"portfolio-service/pkg/logger"
)

// Recovery turns a panic in a handler into a system error envelope.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithContext(c.Request.Context(), log).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		resp := crud.NewFailure(crud.StatusSystemError, "system error")
		c.AbortWithStatusJSON(resp.StatusCode(), resp.Body())
	})
}
