package repository

import (
	"errors"

	"github.com/pazar-next/internal/models"

	"gorm.io/gorm"
)

// ShopRepository 店铺数据访问接口
type ShopRepository interface {
	GetByID(id uint) (*models.Shop, error)
	GetByUserID(userID uint) (*models.Shop, error)
	GetBySlug(slug string) (*models.Shop, error)
	Create(shop *models.Shop) error
	Update(shop *models.Shop) error
	IncrementTotalSales(shopID uint, quantity int) error
	WithTx(tx *gorm.DB) *GormShopRepository
}

// GormShopRepository GORM 实现
type GormShopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓库
func NewShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// WithTx 绑定事务
func (r *GormShopRepository) WithTx(tx *gorm.DB) *GormShopRepository {
	if tx == nil {
		return r
	}
	return &GormShopRepository{db: tx}
}

// GetByID 根据 ID 获取店铺
func (r *GormShopRepository) GetByID(id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// GetByUserID 根据用户 ID 获取店铺（每个卖家至多一个店铺）
func (r *GormShopRepository) GetByUserID(userID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.Where("user_id = ?", userID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// GetBySlug 根据 slug 获取店铺
func (r *GormShopRepository) GetBySlug(slug string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// Create 创建店铺
func (r *GormShopRepository) Create(shop *models.Shop) error {
	return r.db.Create(shop).Error
}

// Update 更新店铺
func (r *GormShopRepository) Update(shop *models.Shop) error {
	return r.db.Save(shop).Error
}

// IncrementTotalSales 累加店铺销量
func (r *GormShopRepository) IncrementTotalSales(shopID uint, quantity int) error {
	if shopID == 0 || quantity <= 0 {
		return nil
	}
	return r.db.Model(&models.Shop{}).
		Where("id = ?", shopID).
		UpdateColumn("total_sales", gorm.Expr("total_sales + ?", quantity)).Error
}
