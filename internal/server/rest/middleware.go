package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avorobyov/taskkeeper/internal/common"
	"github.com/avorobyov/taskkeeper/internal/server/models"
)

const (
	ctxKeyUser  = "user"
	ctxKeyToken = "token"
)

// requireAuth extracts the bearer token, resolves it to a user and stores
// both on the request context. Any failure aborts with a uniform 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			return
		}
		token := strings.TrimPrefix(h, "Bearer ")

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			return
		}

		c.Set(ctxKeyUser, user)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

// currentUser returns the authenticated user stored by requireAuth.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxKeyUser).(*models.User)
}

// currentToken returns the exact bearer token the request presented.
func currentToken(c *gin.Context) string {
	return c.MustGet(ctxKeyToken).(string)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID, err := common.MakeRandHexString(8)
		if err == nil {
			c.Header("X-Request-Id", reqID)
		}
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
