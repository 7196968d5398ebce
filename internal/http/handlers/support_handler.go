package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/service"
)

type SupportHandler struct {
	support *service.SupportService
}

func NewSupportHandler(support *service.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

// Contact handles GET /api/support.
func (h *SupportHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, h.support.Contact())
}
