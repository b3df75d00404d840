package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yaara40/academic-department-website-sub000/internal/auth"
)

// AdminRequired rejects requests without a valid admin bearer token and
// stores the verified claims on the context.
func AdminRequired(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			Error(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("admin_id", claims.UserID)
		c.Set("admin_email", claims.Email)
		c.Next()
	}
}
