package auth

import (
	"net/http"
	"strings"

	"github.com/AdventureDe/DuoChat/repo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextUserKey is the gin context key holding the authenticated user id.
const ContextUserKey = "userID"

// extractBearerToken pulls the token out of the Authorization header.
// The second return value is an error message, empty on success.
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware authenticates requests: the bearer token must verify and the
// user must hold a live session whose token matches. On success the user id
// is stored on the gin context under ContextUserKey.
func Middleware(tokens *TokenService, sessions repo.SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errMsg := extractBearerToken(c.GetHeader("Authorization"))
		if errMsg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			return
		}
		userID, err := tokens.Verify(token)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		session, err := sessions.GetSession(c.Request.Context(), userID)
		if err != nil || session.Token != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// RequestID tags every request with an id for log correlation and echoes it
// back in the X-Request-ID header.
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
		logger.Info("request",
			zap.String("requestID", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

// CallerID returns the authenticated user id set by Middleware.
func CallerID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserKey)
}
