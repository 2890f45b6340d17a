package models

import "time"

// Invoice 发票表
type Invoice struct {
	ID        uint      `gorm:"primarykey" json:"id"`                              // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                    // 订单ID
	Amount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 发票金额
	Status    string    `gorm:"index;not null" json:"status"`                      // 发票状态
	CreatedAt time.Time `json:"created_at"`                                        // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}
