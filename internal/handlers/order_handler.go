package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"order_studio/internal/lifecycle"
	"order_studio/internal/models"
	"order_studio/internal/services"
)

type OrderHandler struct {
	orderService   services.OrderService
	receiptService services.ReceiptService
}

func NewOrderHandler(orderService services.OrderService, receiptService services.ReceiptService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		receiptService: receiptService,
	}
}

type submitOrderRequest struct {
	CustomerName string               `json:"customer_name" binding:"required"`
	Phone        string               `json:"phone" binding:"required"`
	Email        string               `json:"email"`
	Line         models.ProductLine   `json:"line" binding:"required"`
	Print        *models.PrintDetails `json:"print"`
	Cake         *models.CakeDetails  `json:"cake"`
	Comments     string               `json:"comments"`
	FileNames    []string             `json:"file_names"`
}

func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.Submit(c.Request.Context(), services.SubmitRequest{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Details: models.OrderDetails{
			Line:     req.Line,
			Print:    req.Print,
			Cake:     req.Cake,
			Comments: req.Comments,
		},
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not record the order, please try again"})
		return
	}

	// record where uploads will land so staff can zip them later
	if len(req.FileNames) > 0 {
		manifest := make([]string, 0, len(req.FileNames))
		for _, name := range req.FileNames {
			manifest = append(manifest, services.UploadName(order.Details.Line, order.CustomerName, order.ID, name))
		}
		if err := h.orderService.AttachFiles(c.Request.Context(), order.ID, manifest); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Order recorded but file manifest was not saved"})
			return
		}
		order.Details.Files = manifest
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"amount":   order.Amount,
		"status":   order.Status,
		"files":    order.Details.Files,
	})
}

func (h *OrderHandler) TrackOrders(c *gin.Context) {
	rawPhone := c.Query("phone")
	if rawPhone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
		return
	}

	orders := h.orderService.Track(c.Request.Context(), rawPhone)
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.orderService.AllOrders(c.Request.Context())
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateOrderRequest struct {
	Status        models.OrderStatus   `json:"status" binding:"required"`
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required"`
	Amount        *float64             `json:"amount"`
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status, req.PaymentStatus, req.Amount)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, order)
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrUnknownStatus), errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not save the change, please try again"})
	}
}

func (h *OrderHandler) GetReceipt(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.txt", id))
	c.String(http.StatusOK, h.receiptService.Receipt(*order))
}

func (h *OrderHandler) GetArchive(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	data, err := h.receiptService.Archive(*order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=order_%d.zip", id))
	c.Data(http.StatusOK, "application/zip", data)
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}
