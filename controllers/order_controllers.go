package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ShashankBagda/AI-Restaurant/middlewares"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder -> customer places an order for their table.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)

	var req struct {
		TableID string                      `json:"table_id"`
		Items   []services.OrderLineRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.TableID == "" {
		req.TableID = session.TableID
	}

	order, err := oc.Orders.Create(session, req.TableID, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order_id":       order.ID,
		"status":         order.Status,
		"total":          order.Total,
		"payment_status": order.PaymentStatus,
	})
}

// ListOrders -> staff/admin view, filtered by specialty and assignment.
func (oc *OrderController) ListOrders(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)

	orders, err := oc.Orders.ListForViewer(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders", gin.H{"orders": orders})
}

// ListMyOrders -> customer order history.
func (oc *OrderController) ListMyOrders(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)

	orders, err := oc.Orders.ListMine(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders", gin.H{"orders": orders})
}

// UpdateOrder -> staff/admin set the order status; admins may also reassign
// every line.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status     string `json:"status"`
		AssignedTo string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Orders.UpdateStatus(session, orderID, req.Status, req.AssignedTo); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", gin.H{"order_id": orderID, "status": req.Status})
}

// PayOrder -> owning customer settles the order, exactly once.
func (oc *OrderController) PayOrder(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := oc.Orders.Pay(session, orderID, req.Method)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment recorded", payment)
}

// RateOrder -> owning customer rates a served order (upsert).
func (oc *OrderController) RateOrder(c *gin.Context) {
	session, _ := middlewares.SessionFromContext(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Rating  int     `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	if err := oc.Orders.Rate(session, orderID, req.Rating, comment); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rating saved", gin.H{"order_id": orderID, "rating": req.Rating})
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		respondServiceError(c, services.ErrInvalidInput)
		return 0, false
	}
	return uint(id), true
}
