package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（一个学校的一次套件申请）
type Order struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                            // 主键
	Reason               string         `json:"reason"`                                          // 申请缘由
	Product              string         `json:"product"`                                         // 产品名称
	FreeSample           bool           `gorm:"not null;default:false" json:"free_sample"`       // 是否附带免费样品
	FirstName            string         `gorm:"not null" json:"first_name"`                      // 联系人名
	LastName             string         `gorm:"not null" json:"last_name"`                       // 联系人姓
	SchoolName           string         `gorm:"index" json:"school_name"`                        // 学校名称
	Position             string         `json:"position"`                                        // 联系人职位
	ArtPacks             int            `gorm:"not null;default:0" json:"art_packs"`             // 画材包数量
	Referral             string         `json:"referral"`                                        // 推荐来源
	Email                string         `gorm:"index" json:"email"`                              // 联系邮箱
	Phone                string         `json:"phone"`                                           // 联系电话
	AddressLine1         string         `json:"address_line1"`                                   // 地址行1
	AddressLine2         string         `json:"address_line2"`                                   // 地址行2
	City                 string         `json:"city"`                                            // 城市
	County               string         `json:"county"`                                          // 郡
	Postcode             string         `json:"postcode"`                                        // 邮编
	DeliveryInstructions string         `gorm:"type:text" json:"delivery_instructions"`          // 配送备注
	AgreeToPromotions    bool           `gorm:"not null;default:false" json:"agree_to_promotions"` // 是否同意营销推送
	Status               string         `gorm:"index;not null" json:"status"`                    // 订单状态
	PortalUsername       string         `gorm:"index" json:"portal_username"`                    // 门户账号
	PortalPassword       string         `json:"portal_password"`                                 // 门户密码
	KitDispatchedAt      string         `gorm:"not null" json:"kit_dispatched_at"`               // 套件寄出列（哨兵短语或 ISO 时间）
	KitReceivedAt        string         `gorm:"not null" json:"kit_received_at"`                 // 套件收到列（哨兵短语或 ISO 时间）
	Quantities           string         `gorm:"not null" json:"quantities"`                      // 各班数量 JSON（未确认时为哨兵值）
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                         // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间

	// 关联（每单恰好一条套件、一条画作、一张发票）
	Kit     *Kit     `gorm:"foreignKey:OrderID" json:"kit,omitempty"`
	Artwork *Artwork `gorm:"foreignKey:OrderID" json:"artwork,omitempty"`
	Invoice *Invoice `gorm:"foreignKey:OrderID" json:"invoice,omitempty"`
	Tasks   []Task   `gorm:"foreignKey:OrderID" json:"tasks,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
