// README: Recovery middleware; panics become the generic unavailable response.
package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"tripscope/internal/service"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[%s] panic: %v\n%s", RequestID(c), r, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, service.UnavailableResponse())
			}
		}()
		c.Next()
	}
}
