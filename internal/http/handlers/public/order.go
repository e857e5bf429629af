package public

import (
	"errors"

	handlershared "github.com/pazar-next/internal/http/handlers/shared"
	"github.com/pazar-next/internal/http/response"
	"github.com/pazar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 购物车结算请求
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ShippingCity    string `json:"shipping_city"`
	ShippingZipCode string `json:"shipping_zip_code"`
	ShippingCountry string `json:"shipping_country"`
	CustomerPhone   string `json:"customer_phone"`
	Notes           string `json:"notes"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

// CreateOrder 从购物车结算创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:          uid,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingZipCode: req.ShippingZipCode,
		ShippingCountry: req.ShippingCountry,
		CustomerPhone:   req.CustomerPhone,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order create failed")
		return
	}
	response.Created(c, order)
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.NormalizePagination(
		parseIntQuery(c, "page", 1),
		parseIntQuery(c, "page_size", 20),
	)

	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize, c.Query("status"))
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 订单详情（仅限本人订单）
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetByIDAndUser(orderID, uid)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	if order == nil {
		response.NotFound(c)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单并回补库存
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.CancelOrder(uid, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c)
		case errors.Is(err, service.ErrOrderCannotCancel):
			respondError(c, response.CodeBadRequest, "order can no longer be cancelled", nil)
		default:
			respondError(c, response.CodeInternal, "order cancel failed", err)
		}
		return
	}
	response.Success(c, order)
}
