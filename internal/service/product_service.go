package service

import (
	"strings"

	"github.com/pazar-next/internal/constants"
	"github.com/pazar-next/internal/models"
	"github.com/pazar-next/internal/repository"
)

// 搜索接口固定每页 20 条
const searchPageSize = 20

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	shopRepo     *repository.GormShopRepository
	categoryRepo *repository.GormCategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, shopRepo *repository.GormShopRepository, categoryRepo *repository.GormCategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
	}
}

// ProductListInput 商品列表查询输入
type ProductListInput struct {
	Page       int
	PageSize   int
	CategoryID uint
	ShopID     uint
	Search     string
}

// ListPublic 公开商品列表（仅上架商品）
func (s *ProductService) ListPublic(input ProductListInput) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Page:         input.Page,
		PageSize:     input.PageSize,
		CategoryID:   input.CategoryID,
		ShopID:       input.ShopID,
		Search:       input.Search,
		OnlyActive:   true,
		WithShop:     true,
		WithCategory: true,
		WithImages:   true,
	})
}

// Search 按名称或描述模糊搜索
func (s *ProductService) Search(keyword string, page int) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   searchPageSize,
		Search:     strings.TrimSpace(keyword),
		OnlyActive: true,
		WithImages: true,
	})
}

// GetByID 获取商品详情并累加浏览次数
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := s.productRepo.IncrementViewCount(product.ID); err != nil {
		return nil, err
	}
	product.ViewCount++
	return product, nil
}

// GetBySlug 根据 slug 获取商品详情并累加浏览次数
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := s.productRepo.IncrementViewCount(product.ID); err != nil {
		return nil, err
	}
	product.ViewCount++
	return product, nil
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	CategoryID    uint
	Name          string
	Description   string
	Price         models.Money
	DiscountPrice *models.Money
	SKU           string
	Stock         int
	IsActive      *bool
	IsFeatured    bool
	ImageURLs     []string
}

// Create 卖家创建商品
func (s *ProductService) Create(userID uint, input CreateProductInput) (*models.Product, error) {
	shop, err := s.resolveShop(userID)
	if err != nil {
		return nil, err
	}
	if err := validateProductPricing(input.Price, input.DiscountPrice); err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNotAvailable
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryInvalid
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		ShopID:      shop.ID,
		CategoryID:  category.ID,
		Slug:        generateSlug(name),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		SKU:         strings.TrimSpace(input.SKU),
		Stock:       input.Stock,
		IsActive:    isActive,
		IsFeatured:  input.IsFeatured,
	}
	if input.DiscountPrice != nil {
		dp := *input.DiscountPrice
		product.DiscountPrice = &dp
	}
	for i, url := range input.ImageURLs {
		trimmed := strings.TrimSpace(url)
		if trimmed == "" {
			continue
		}
		product.Images = append(product.Images, models.ProductImage{
			URL:       trimmed,
			SortOrder: i,
			IsPrimary: len(product.Images) == 0,
		})
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput 更新商品输入（nil 字段保持不变）
type UpdateProductInput struct {
	CategoryID    *uint
	Name          *string
	Description   *string
	Price         *models.Money
	DiscountPrice *models.Money
	ClearDiscount bool
	SKU           *string
	Stock         *int
	IsActive      *bool
	IsFeatured    *bool
}

// Update 卖家更新商品（仅限本店商品）
func (s *ProductService) Update(userID, productID uint, input UpdateProductInput) (*models.Product, error) {
	shop, err := s.resolveShop(userID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.ShopID != shop.ID {
		return nil, ErrNotProductOwner
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryInvalid
		}
		product.CategoryID = category.ID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProductNotAvailable
		}
		// slug 在创建时固定，改名不重新生成
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ClearDiscount {
		product.DiscountPrice = nil
	} else if input.DiscountPrice != nil {
		dp := *input.DiscountPrice
		product.DiscountPrice = &dp
	}
	if err := validateProductPricing(product.Price, product.DiscountPrice); err != nil {
		return nil, err
	}
	if input.SKU != nil {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidStock
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 下架并软删除商品（店主或管理员）
func (s *ProductService) Delete(userID uint, role string, productID uint) (bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}

	if role != constants.RoleAdmin {
		shop, err := s.resolveShop(userID)
		if err != nil {
			return false, err
		}
		if product.ShopID != shop.ID {
			return false, ErrNotProductOwner
		}
	}

	if err := s.productRepo.Delete(product.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ProductService) resolveShop(userID uint) (*models.Shop, error) {
	if userID == 0 {
		return nil, ErrShopRequired
	}
	shop, err := s.shopRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopRequired
	}
	return shop, nil
}

func validateProductPricing(price models.Money, discount *models.Money) error {
	if !price.Decimal.IsPositive() {
		return ErrInvalidPrice
	}
	if discount != nil {
		if !discount.Decimal.IsPositive() {
			return ErrInvalidPrice
		}
		if discount.Decimal.GreaterThan(price.Decimal) {
			return ErrDiscountExceedsPrice
		}
	}
	return nil
}
