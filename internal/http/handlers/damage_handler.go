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

type DamageHandler struct {
	damages *service.DamageService
}

func NewDamageHandler(damages *service.DamageService) *DamageHandler {
	return &DamageHandler{damages: damages}
}

// CreateDamage handles POST /api/damages (multipart: description, photo).
func (h *DamageHandler) CreateDamage(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	var form dto.DamageForm
	if err := c.ShouldBind(&form); err != nil {
		common.RespondBadRequest(c, i18n.KeyDamageDescriptionRequired)
		return
	}

	photo, closePhoto, err := common.Photo(c)
	if err != nil {
		common.Fail(c, err)
		return
	}
	defer closePhoto()

	report, err := h.damages.Submit(c.Request.Context(), userID, service.DamageInput{
		Description: form.Description,
		Photo:       photo,
	})
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusCreated, i18n.KeyDamageSaved, "", dto.NewDamageResponse(*report))
}

// ListDamages handles GET /api/damages.
func (h *DamageHandler) ListDamages(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	listing, err := h.damages.List(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(listing, middleware.Lang(c), dto.NewDamageResponse))
}
