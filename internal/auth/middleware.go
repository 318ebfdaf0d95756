package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shreyansh232/wysa/internal/response"
)

// Middleware guards the assessment routes. It only proves identity; it
// knows nothing about assessments. Verified claims land on the context
// under "claims" for downstream handlers.
func Middleware(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.NewFailure("Access token required"))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.NewFailure("Access token required"))
			return
		}
		claims, err := ParseToken(token, secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.NewFailure("Invalid or expired token"))
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}
