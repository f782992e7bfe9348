package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petfolk/petcare/internal/service/order"
)

type OrderHandler struct {
	service order.OrderUseCase
}

func NewOrderHandler(service order.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("/orders", h.create)
	router.GET("/orders", h.list)
	router.GET("/orders/:bNo/items", h.items)
	router.GET("/orders/pending/summary", h.pending)
}

func (h *OrderHandler) create(c *gin.Context) {
	var req order.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	}

	result, err := h.service.Create(c.Request.Context(), assertedMember(c, req.MemberID), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "bNo": result.BookingNo, "rDate": result.ReservedAt})
}

func (h *OrderHandler) list(c *gin.Context) {
	memberID, ok := memberIdentity(c)
	if !ok {
		return
	}

	orders, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "orders": orders})
}

func (h *OrderHandler) items(c *gin.Context) {
	memberID, ok := memberIdentity(c)
	if !ok {
		return
	}

	items, err := h.service.Items(c.Request.Context(), memberID, c.Param("bNo"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *OrderHandler) pending(c *gin.Context) {
	memberID, ok := memberIdentity(c)
	if !ok {
		return
	}

	summary, err := h.service.Pending(c.Request.Context(), memberID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pendingCount": summary.Count, "pendingTotalPrice": summary.Total})
}
