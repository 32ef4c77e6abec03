package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/handlers"
)

func registerBrandRoutes(api *gin.RouterGroup, handler *handlers.BrandHandler) {
	group := api.Group("/brand/documents")
	{
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.POST("", handler.Create)
		group.PATCH("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
	}
}
