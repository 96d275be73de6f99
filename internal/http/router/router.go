package router

import (
	"github.com/gin-gonic/gin"

	"gandalf.app/compiler/internal/http/handler"
)

func SetupRoutes(router *gin.Engine, intent *handler.IntentHandler, delegateStatus *handler.DelegateStatusHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/intent", intent.Compile)
		v1.POST("/intent/clarify", intent.Clarify)
		v1.GET("/delegate/status", delegateStatus.Status)
	}
}
