package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo          string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号
	UserID           uint           `gorm:"index;not null" json:"user_id"`                                 // 用户ID
	Status           string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	TotalAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 订单金额（下单时冻结）
	CommissionAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission_amount"` // 平台抽成金额
	ShippingAddress  string         `gorm:"type:varchar(500);not null" json:"shipping_address"`            // 收货地址
	ShippingCity     string         `gorm:"type:varchar(100)" json:"shipping_city"`                        // 城市
	ShippingZipCode  string         `gorm:"type:varchar(20)" json:"shipping_zip_code"`                     // 邮编
	ShippingCountry  string         `gorm:"type:varchar(100)" json:"shipping_country"`                     // 国家
	CustomerPhone    string         `gorm:"type:varchar(30)" json:"customer_phone"`                        // 联系电话
	Notes            string         `gorm:"type:text" json:"notes"`                                        // 备注
	CancelledAt      *time.Time     `gorm:"index" json:"cancelled_at"`                                     // 取消时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	// 关联
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`   // 订单项
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"` // 支付记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
