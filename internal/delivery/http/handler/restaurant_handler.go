package handler

import (
	"net/http"
	"strconv"

	domainUser "food-delivery-backend/internal/domain/user"
	"food-delivery-backend/internal/middleware"
	"food-delivery-backend/internal/usecase/restaurant"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	service *restaurant.Service
}

func NewRestaurantHandler(service *restaurant.Service) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// RegisterRoutes mounts the public read routes and the session-protected write routes.
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	restaurants := router.Group("/restaurants")
	{
		restaurants.GET("", h.List)
		restaurants.GET("/:id", h.Get)
		restaurants.GET("/:id/menu", h.ListMenu)

		restaurants.POST("", requireSession, h.Create)
		restaurants.PATCH("/:id", requireSession, h.Update)
		restaurants.DELETE("/:id", requireSession, h.Delete)

		restaurants.POST("/:id/menu", requireSession, h.CreateMenuItem)
		restaurants.PATCH("/:id/menu/:itemId", requireSession, h.UpdateMenuItem)
		restaurants.DELETE("/:id/menu/:itemId", requireSession, h.DeleteMenuItem)
	}
}

func (h *RestaurantHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}

	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RestaurantHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req restaurant.CreateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}
	var req restaurant.UpdateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RestaurantHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RestaurantHandler) ListMenu(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}
	includeUnavailable, _ := strconv.ParseBool(c.Query("all"))

	items, err := h.service.ListMenu(c.Request.Context(), id, includeUnavailable)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RestaurantHandler) CreateMenuItem(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}
	var req restaurant.CreateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.CreateMenuItem(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId", "menu item")
	if !ok {
		return
	}
	var req restaurant.UpdateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.UpdateMenuItem(c.Request.Context(), actor, id, itemID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "restaurant")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId", "menu item")
	if !ok {
		return
	}

	if err := h.service.DeleteMenuItem(c.Request.Context(), actor, id, itemID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func actorFrom(c *gin.Context) (restaurant.Actor, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return restaurant.Actor{}, false
	}
	return restaurant.Actor{
		UserID:  userID,
		IsAdmin: middleware.GetRole(c) == string(domainUser.RoleAdmin),
	}, true
}
