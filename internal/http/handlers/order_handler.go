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

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	var req dto.OrderRequestBody
	if err := c.ShouldBind(&req); err != nil {
		common.RespondBadRequest(c, i18n.KeyOrderDetailsRequired)
		return
	}

	order, err := h.orders.Submit(c.Request.Context(), userID, req.Type, req.Details)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusCreated, i18n.KeyOrderSaved, "", dto.NewOrderResponse(*order))
}

// ListOrders handles GET /api/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := common.RequireUser(c)
	if !ok {
		return
	}

	listing, err := h.orders.List(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(listing, middleware.Lang(c), dto.NewOrderResponse))
}

// OrderTypes handles GET /api/orders/types.
func (h *OrderHandler) OrderTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": models.OrderTypes})
}
