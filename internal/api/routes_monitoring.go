package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/handlers"
)

func registerMonitoringRoutes(api *gin.RouterGroup, handler *handlers.MonitoringHandler) {
	group := api.Group("/monitoring")
	{
		group.GET("/clippings", handler.ListClippings)
		group.POST("/clippings", handler.CreateClipping)
		group.GET("/report", handler.Report)
	}
}
