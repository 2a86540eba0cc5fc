package auth

import "github.com/gin-gonic/gin"

const adminIDKey = "adminID"

// GetAdminID returns the authenticated admin's ID or empty string.
func GetAdminID(c *gin.Context) string {
	if v, ok := c.Get(adminIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
