package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                    // 主键
	ShopID        uint           `gorm:"not null;index" json:"shop_id"`                           // 店铺ID
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                       // 分类ID
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                        // 唯一标识
	Name          string         `gorm:"not null" json:"name"`                                    // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                            // 商品描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`     // 标价
	DiscountPrice *Money         `gorm:"type:decimal(20,2)" json:"discount_price,omitempty"`     // 折扣价（为空表示无折扣）
	SKU           string         `gorm:"type:varchar(100)" json:"sku"`                            // 商家货号
	Stock         int            `gorm:"not null;default:0" json:"stock"`                         // 库存数量
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                     // 是否上架
	IsFeatured    bool           `gorm:"default:false" json:"is_featured"`                        // 是否推荐
	RatingAverage float64        `gorm:"type:decimal(3,2);not null;default:0" json:"rating_average"` // 评分均值（冗余字段）
	ReviewCount   int            `gorm:"not null;default:0" json:"review_count"`                  // 评价数（冗余字段）
	ViewCount     int            `gorm:"not null;default:0" json:"view_count"`                    // 浏览数（冗余字段）
	SoldCount     int            `gorm:"not null;default:0" json:"sold_count"`                    // 已售数量（冗余字段）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	// 关联
	Shop     Shop           `gorm:"foreignKey:ShopID" json:"shop,omitempty"`         // 店铺信息
	Category Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`    // 商品图片
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 生效单价（折扣价优先）
func (p *Product) EffectivePrice() Money {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
