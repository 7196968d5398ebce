package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/http/handlers/common"
	"github.com/agrox/fieldops/internal/http/middleware"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/service"
)

type FuelHandler struct {
	fuel *service.FuelService
}

func NewFuelHandler(fuel *service.FuelService) *FuelHandler {
	return &FuelHandler{fuel: fuel}
}

// IssueToken handles POST /api/fuel/token. The token ties the pump photo to
// the refuelling record.
func (h *FuelHandler) IssueToken(c *gin.Context) {
	if _, ok := common.RequireUser(c); !ok {
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:   h.fuel.IssueToken(),
		Message: i18n.T(middleware.Lang(c), i18n.KeyFuelTokenIssued),
	})
}

// CreateFueling handles POST /api/fuel
// (multipart: token, value, km_hours, latitude, longitude, geo_status, photo).
func (h *FuelHandler) CreateFueling(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	var form dto.FuelForm
	if err := c.ShouldBind(&form); err != nil {
		common.RespondBadRequest(c, i18n.KeyFuelValueInvalid)
		return
	}

	photo, closePhoto, err := common.Photo(c)
	if err != nil {
		common.Fail(c, err)
		return
	}
	defer closePhoto()

	fueling, err := h.fuel.Submit(c.Request.Context(), userID, service.FuelInput{
		Token:   form.Token,
		Value:   form.Value,
		KmHours: form.KmHours,
		Locator: locator(form.GeoFields),
		Photo:   photo,
	})
	if err != nil {
		common.Fail(c, err)
		return
	}

	notice := geoNotice(c, form.GeoFields, fueling.Latitude != nil)
	common.RespondSuccess(c, http.StatusCreated, i18n.KeyFuelSaved, notice, dto.NewFuelResponse(*fueling))
}

// ListFuelings handles GET /api/fuel.
func (h *FuelHandler) ListFuelings(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	listing, err := h.fuel.List(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(listing, middleware.Lang(c), dto.NewFuelResponse))
}
