package public

import (
	handlershared "github.com/pazar-next/internal/http/handlers/shared"
	"github.com/pazar-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ListProductReviews 商品评价列表
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := handlershared.NormalizePagination(
		parseIntQuery(c, "page", 1),
		parseIntQuery(c, "page_size", 20),
	)

	reviews, total, err := h.ReviewService.ListByProduct(productID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "review list failed", err)
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// CreateReview 创建商品评价，每个用户每个商品仅一条
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	review, err := h.ReviewService.Create(uid, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		respondWithMappedError(c, err, reviewCreateErrorRules, response.CodeInternal, "review create failed")
		return
	}
	response.Created(c, review)
}
