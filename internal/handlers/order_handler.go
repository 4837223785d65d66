package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"printstore/internal/models"
	"printstore/internal/services"
)

type OrderHandler struct {
	orders services.OrderService
	users  services.UserService
}

func NewOrderHandler(orders services.OrderService, users services.UserService) *OrderHandler {
	return &OrderHandler{orders: orders, users: users}
}

// @Summary      Place an order
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request  body      models.OrderRequest  true  "Order lines and shipping method"
// @Success      201      {object}  models.Order
// @Failure      400      {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		businessError(c, "At least one order line and a shipping method are required.")
		return
	}

	order, err := h.orders.PlaceOrder(user, req)
	if err != nil {
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid order id.")
		return
	}
	order, err := h.orders.GetOrder(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	userID, _ := currentUserID(c)
	roleID, _ := getIntFromCtx(c, "role_id")
	if order.UserID != userID && roleID != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	orders, err := h.orders.ListOrdersByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid order id.")
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		businessError(c, "Status is required.")
		return
	}
	if err := h.orders.UpdateStatus(id, req.Status); err != nil {
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.OK("Order status updated."))
}

func (h *OrderHandler) ListShippingMethods(c *gin.Context) {
	methods, err := h.orders.ListShippingMethods()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, methods)
}
