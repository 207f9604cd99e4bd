package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magnusgp/fermatter/internal/http/handler"
)

func SetupRoutes(router *gin.Engine, analyzer handler.AnalyzerService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sourcesHandler := handler.NewSourcesHandler()
	router.GET("/sources", sourcesHandler.List)

	analyzeHandler := handler.NewAnalyzeHandler(analyzer)
	router.POST("/analyze", analyzeHandler.Analyze)
}
