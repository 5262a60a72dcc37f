package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DatabaseMiddleware exposes the shared gorm handle to handlers that run
// simple read queries directly.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}
