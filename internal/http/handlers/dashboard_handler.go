package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/http/middleware"
	"github.com/agrox/fieldops/internal/service"
)

// DashboardHandler serves the home screen and the probe status.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Dashboard handles GET /api/dashboard.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, dto.DashboardResponse{Tiles: h.dashboard.Tiles(middleware.Lang(c))})
}

// ProbeStatus handles GET /api/probe: which table or bucket each module
// resolved to in this process.
func (h *DashboardHandler) ProbeStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ProbeResponse{Resources: h.dashboard.ProbeStatus()})
}
