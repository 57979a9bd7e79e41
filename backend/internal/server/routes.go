package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint on router.
func SetupRoutes(router *gin.Engine, s *Server) {
	router.GET("/health", HealthCheck)
	if s.cfg.Metrics.Enabled {
		router.GET(s.cfg.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	v1 := router.Group("/v1")
	{
		v1.GET("/sample", s.handleSample)
		v1.POST("/datasets", s.uploadLimit(), s.handleUpload)

		datasets := v1.Group("/datasets/:id")
		{
			datasets.GET("", s.handleDataset)
			datasets.GET("/choices", s.handleChoices)
			datasets.GET("/carriers", s.handleCarriers)
			datasets.GET("/carriers/:name", s.handleCarrier)
			datasets.POST("/details", s.handleDetails)
			datasets.GET("/related", s.handleRelated)
			datasets.GET("/brokers/:name", s.handleBroker)
			datasets.GET("/stats", s.handleStats)
			datasets.GET("/graph", s.handleGraph)
			datasets.POST("/export", s.handleExport)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", s.handleCreateSession)
			sessions.GET("/:sid", s.handleGetSession)
			sessions.PUT("/:sid/state", s.handleUpdateSession)
			sessions.DELETE("/:sid", s.handleDeleteSession)
		}
	}
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// uploadLimit throttles uploads when a rate is configured.
func (s *Server) uploadLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many uploads, retry shortly"})
			return
		}
		c.Next()
	}
}
