package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *HTTPServer) setupRoutes() {
	h.router.Use(h.httpMetrics.Middleware())

	h.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "server is running",
		})
	})
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "route not found",
		})
	})

	providers := h.router.Group("/api/v1.0/providers/:provider")
	providers.POST("/subscribe", h.handler.SubscribeHandler)
	providers.POST("/notify", h.handler.NotifyHandler)
	providers.POST("/broadcast", h.handler.BroadcastHandler)
}
