package http

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/subhaneetshrestha/lereddit/internal/config"
	"github.com/subhaneetshrestha/lereddit/internal/handler/http/middleware"
)

// SetupRouter wires the middleware chain and routes. The session cookie
// middleware sits before the GraphQL handler so resolvers can read and
// write the identity cookie through the request context.
func SetupRouter(schema graphql.Schema, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CorsMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SessionMiddleware(cfg.Session, cfg.IsProduction()))

	graphqlHandler := NewGraphQLHandler(schema, logger)
	router.POST("/graphql", graphqlHandler.Serve)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
