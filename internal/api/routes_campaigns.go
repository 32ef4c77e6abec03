package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/handlers"
)

func registerCampaignRoutes(api *gin.RouterGroup, handler *handlers.CampaignHandler) {
	group := api.Group("/campaigns")
	{
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.POST("", handler.Create)
		group.PATCH("/:id", handler.Update)
		group.POST("/:id/sent", handler.MarkSent)
		group.DELETE("/:id", handler.Delete)
	}
}
