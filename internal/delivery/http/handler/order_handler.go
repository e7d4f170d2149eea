package handler

import (
	"net/http"

	domainUser "food-delivery-backend/internal/domain/user"
	"food-delivery-backend/internal/middleware"
	"food-delivery-backend/internal/usecase/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *order.Service
}

func NewOrderHandler(service *order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes mounts order routes behind the given guards (session, then verified email).
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	orders := router.Group("/orders", guards...)
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.ListMyOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id/status", h.UpdateStatus)
	}

	restaurantOrders := router.Group("/restaurants", guards...)
	restaurantOrders.GET("/:id/orders", h.ListRestaurantOrders)
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req order.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.service.ListMyOrders(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	resp, err := h.service.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, ok := orderActorFrom(c)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}
	var req order.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), actor, orderID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ListRestaurantOrders(c *gin.Context) {
	actor, ok := orderActorFrom(c)
	if !ok {
		return
	}
	restaurantID, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}

	orders, err := h.service.ListRestaurantOrders(c.Request.Context(), actor, restaurantID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func orderActorFrom(c *gin.Context) (order.Actor, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return order.Actor{}, false
	}
	return order.Actor{
		UserID:  userID,
		IsAdmin: middleware.GetRole(c) == string(domainUser.RoleAdmin),
	}, true
}
