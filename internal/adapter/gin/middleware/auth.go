package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-service/internal/adapter/auth"
	"portfolio-service/internal/usecase/crud"
	"portfolio-service/pkg/logger"
)

// TokenVerifier checks a session token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid token in the Authorization header.
// The header holds either the raw token or "Bearer <token>".
func Auth(verifier TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "token is required")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			logger.WithContext(c.Request.Context(), log).Warn("rejected token", zap.Error(err))
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func abortUnauthorized(c *gin.Context, message string) {
	resp := crud.NewFailure(crud.StatusInvalidCredentials, message)
	c.AbortWithStatusJSON(resp.StatusCode(), resp.Body())
}
