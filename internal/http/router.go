// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tripscope/internal/http/handlers"
	"tripscope/internal/http/middleware"
	"tripscope/internal/modules/scope"
)

type RouterDeps struct {
	Planner     handlers.Planner
	Resolver    *scope.Resolver
	CORSOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 0 || (len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	aiHandler := handlers.NewAIHandler(deps.Planner)
	r.POST("/api/ai", aiHandler.Plan)

	regionHandler := handlers.NewRegionHandler(deps.Resolver)
	r.GET("/api/region", regionHandler.Inspect)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
