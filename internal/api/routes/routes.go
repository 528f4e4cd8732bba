package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vendaflow/app-inventario-search/internal/api/handlers"
	middlewares "github.com/vendaflow/app-inventario-search/internal/middleware"
	"github.com/vendaflow/app-inventario-search/internal/search"
)

func SetupRouter(engine *search.Engine) *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(middlewares.RequestTiming())

	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.Health)
	r.GET("/version", healthHandler.Version)

	integrationHandler := handlers.NewIntegrationHandler(engine)
	searchHandler := handlers.NewSearchHandler(engine)

	api := r.Group("/api/v1")
	api.Use(middlewares.RequireCompany())
	{
		api.POST("/integracoes", integrationHandler.Create)
		api.GET("/integracoes", integrationHandler.List)
		api.GET("/integracoes/:id", integrationHandler.Get)
		api.PUT("/integracoes/:id", integrationHandler.Update)
		api.POST("/integracoes/:id/inferir", integrationHandler.Infer)
		api.POST("/integracoes/:id/busca", searchHandler.Search)
		api.POST("/resolver", searchHandler.Resolve)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Company-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
