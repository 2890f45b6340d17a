package models

import "time"

// Artwork 画作表（每单一行，路径列保存逗号拼接的有序文件列表）
type Artwork struct {
	ID             uint      `gorm:"primarykey" json:"id"`           // 主键
	OrderID        uint      `gorm:"index;not null" json:"order_id"` // 订单ID
	DesignFilePath *string   `gorm:"type:text" json:"design_file_path"` // "{订单ID}/{文件名}" 逗号拼接列表，空列表为 NULL
	Status         string    `gorm:"not null" json:"status"`         // 画作状态
	CreatedAt      time.Time `json:"created_at"`                     // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                     // 更新时间
}

// TableName 指定表名
func (Artwork) TableName() string {
	return "artworks"
}
