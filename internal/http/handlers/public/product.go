package public

import (
	handlershared "github.com/pazar-next/internal/http/handlers/shared"
	"github.com/pazar-next/internal/http/response"
	"github.com/pazar-next/internal/models"
	"github.com/pazar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	CategoryID    uint          `json:"category_id" binding:"required"`
	Name          string        `json:"name" binding:"required"`
	Description   string        `json:"description"`
	Price         models.Money  `json:"price" binding:"required"`
	DiscountPrice *models.Money `json:"discount_price"`
	SKU           string        `json:"sku"`
	Stock         int           `json:"stock"`
	IsActive      *bool         `json:"is_active"`
	IsFeatured    bool          `json:"is_featured"`
	ImageURLs     []string      `json:"image_urls"`
}

// UpdateProductRequest 更新商品请求，未提供的字段保持不变
type UpdateProductRequest struct {
	CategoryID    *uint         `json:"category_id"`
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Price         *models.Money `json:"price"`
	DiscountPrice *models.Money `json:"discount_price"`
	ClearDiscount bool          `json:"clear_discount"`
	SKU           *string       `json:"sku"`
	Stock         *int          `json:"stock"`
	IsActive      *bool         `json:"is_active"`
	IsFeatured    *bool         `json:"is_featured"`
}

// ListProducts 公开商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		parseIntQuery(c, "page", 1),
		parseIntQuery(c, "page_size", 20),
	)

	products, total, err := h.ProductService.ListPublic(service.ProductListInput{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: parseUintQuery(c, "category_id"),
		ShopID:     parseUintQuery(c, "shop_id"),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// 搜索接口固定每页条数
const searchResultPageSize = 20

// SearchProducts 按关键字搜索商品
func (h *Handler) SearchProducts(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	products, total, err := h.ProductService.Search(c.Query("q"), page)
	if err != nil {
		respondError(c, response.CodeInternal, "product search failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, searchResultPageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	if product == nil {
		response.NotFound(c)
		return
	}
	response.Success(c, product)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	if product == nil {
		response.NotFound(c)
		return
	}
	response.Success(c, product)
}

// CreateProduct 卖家创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Create(uid, service.CreateProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		SKU:           req.SKU,
		Stock:         req.Stock,
		IsActive:      req.IsActive,
		IsFeatured:    req.IsFeatured,
		ImageURLs:     req.ImageURLs,
	})
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "product create failed")
		return
	}
	response.Created(c, product)
}

// UpdateProduct 卖家更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Update(uid, id, service.UpdateProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		ClearDiscount: req.ClearDiscount,
		SKU:           req.SKU,
		Stock:         req.Stock,
		IsActive:      req.IsActive,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "product update failed")
		return
	}
	if product == nil {
		response.NotFound(c)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 下架并删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.ProductService.Delete(uid, getUserRole(c), id)
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "product delete failed")
		return
	}
	if !deleted {
		response.NotFound(c)
		return
	}
	response.NoContent(c)
}
