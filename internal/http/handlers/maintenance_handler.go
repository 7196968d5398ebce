package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/http/handlers/common"
	"github.com/agrox/fieldops/internal/http/middleware"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/service"
)

type MaintenanceHandler struct {
	maintenance *service.MaintenanceService
}

func NewMaintenanceHandler(maintenance *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

// CreateRequest handles POST /api/maintenance
// (multipart: description, location, latitude, longitude, geo_status, photo).
func (h *MaintenanceHandler) CreateRequest(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	var form dto.MaintenanceForm
	if err := c.ShouldBind(&form); err != nil {
		common.RespondBadRequest(c, i18n.KeyMaintenanceDescriptionRequired)
		return
	}

	photo, closePhoto, err := common.Photo(c)
	if err != nil {
		common.Fail(c, err)
		return
	}
	defer closePhoto()

	req, err := h.maintenance.Submit(c.Request.Context(), userID, service.MaintenanceInput{
		Description: form.Description,
		Location:    form.Location,
		Locator:     locator(form.GeoFields),
		Photo:       photo,
	})
	if err != nil {
		common.Fail(c, err)
		return
	}

	lang := middleware.Lang(c)
	notice := geoNotice(c, form.GeoFields, req.Latitude != nil)
	common.RespondSuccess(c, http.StatusCreated, i18n.KeyMaintenanceSaved, notice, dto.NewMaintenanceResponse(*req, lang, h.maintenance.PhotoURL))
}

// ListRequests handles GET /api/maintenance.
func (h *MaintenanceHandler) ListRequests(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	listing, err := h.maintenance.List(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	lang := middleware.Lang(c)
	c.JSON(http.StatusOK, dto.NewListResponse(listing, lang, func(m models.MaintenanceRequest) dto.MaintenanceResponse {
		return dto.NewMaintenanceResponse(m, lang, h.maintenance.PhotoURL)
	}))
}
