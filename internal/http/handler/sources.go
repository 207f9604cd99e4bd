package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magnusgp/fermatter/internal/http/dto"
	"github.com/magnusgp/fermatter/internal/sources"
)

type SourcesHandler struct{}

func NewSourcesHandler() *SourcesHandler {
	return &SourcesHandler{}
}

// List returns the curated citation library.
func (h *SourcesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SourcesLibraryResponse{Sources: sources.All()})
}
