package models

import (
	"time"

	"gorm.io/gorm"
)

// Shop 店铺表
type Shop struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                       // 主键
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`                        // 店主用户ID
	Name           string         `gorm:"not null" json:"name"`                                       // 店铺名称
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	Description    string         `gorm:"type:text" json:"description"`                               // 店铺描述
	LogoURL        string         `gorm:"type:varchar(500)" json:"logo_url"`                          // Logo 地址
	CommissionRate Money          `gorm:"type:decimal(6,2);not null;default:0.10" json:"commission_rate"` // 店铺费率（保留字段，结算当前按平台固定费率）
	IsVerified     bool           `gorm:"default:false" json:"is_verified"`                           // 是否认证
	TotalSales     int64          `gorm:"not null;default:0" json:"total_sales"`                      // 累计销量
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	Products []Product `gorm:"foreignKey:ShopID" json:"products,omitempty"` // 店铺商品
}

// TableName 指定表名
func (Shop) TableName() string {
	return "shops"
}
