package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/handlers"
)

func registerEmailRoutes(api *gin.RouterGroup, handler *handlers.EmailHandler) {
	group := api.Group("/emails/drafts")
	{
		group.GET("", handler.ListDrafts)
		group.POST("", handler.CreateDraft)
		group.POST("/:id/render", handler.Render)
		group.POST("/:id/schedule", handler.Schedule)
	}
}
