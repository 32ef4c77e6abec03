package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/handlers"
)

func registerMediaRoutes(api *gin.RouterGroup, folders *handlers.MediaFolderHandler, assets *handlers.MediaAssetHandler) {
	folderGroup := api.Group("/media/folders")
	{
		folderGroup.GET("", folders.List)
		folderGroup.GET("/tree", folders.Tree)
		folderGroup.POST("", folders.Create)
		folderGroup.PATCH("/:id", folders.Update)
		folderGroup.DELETE("/:id", folders.Delete)
	}

	assetGroup := api.Group("/media/assets")
	{
		assetGroup.GET("", assets.List)
		assetGroup.POST("", assets.Create)
		assetGroup.POST("/:id/move", assets.Move)
		assetGroup.GET("/:id/download", assets.Download)
		assetGroup.DELETE("/:id", assets.Delete)
	}
}
