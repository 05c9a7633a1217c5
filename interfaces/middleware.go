package interfaces

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextUserID = "userID"

// AuthRequired verifies the bearer token and stores the authenticated user
// id in the request context. Rejections carry one generic message.
func (h *HTTPHandler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			return
		}

		userID, err := h.Verify.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			return
		}

		c.Set(contextUserID, userID)
		c.Next()
	}
}
