package models

import "time"

// Kit 套件表
type Kit struct {
	ID             uint       `gorm:"primarykey" json:"id"`          // 主键
	OrderID        uint       `gorm:"index;not null" json:"order_id"` // 订单ID
	DispatchDate   *time.Time `json:"dispatch_date"`                 // 寄出日期
	TrackingNumber *string    `json:"tracking_number"`               // 快递单号
	CreatedAt      time.Time  `json:"created_at"`                    // 创建时间
	UpdatedAt      time.Time  `json:"updated_at"`                    // 更新时间
}

// TableName 指定表名
func (Kit) TableName() string {
	return "kits"
}
