package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magnusgp/fermatter/internal/analysis"
	"github.com/magnusgp/fermatter/internal/http/dto"
)

// AnalyzerService is the core analysis entry point.
type AnalyzerService interface {
	Analyze(ctx context.Context, req analysis.Request) *analysis.Result
}

type AnalyzeHandler struct {
	analyzer AnalyzerService
}

func NewAnalyzeHandler(analyzer AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid analyze request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.analyzer.Analyze(ctx, dto.ToAnalysisRequest(req))
	c.JSON(http.StatusOK, dto.ToAnalyzeResponse(result))
}
