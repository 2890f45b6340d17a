package models

import "time"

// Task 跟进任务表
type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`      // 主键
	Description string     `gorm:"not null" json:"description"` // 任务描述
	DueDate     *time.Time `gorm:"index" json:"due_date"`     // 截止日期
	Completed   bool       `gorm:"not null;default:false" json:"completed"` // 是否完成
	OrderID     *uint      `gorm:"index" json:"order_id"`     // 关联订单（可空）
	TaskType    string     `gorm:"index" json:"task_type"`    // 任务类型
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`   // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                // 更新时间
}

// TableName 指定表名
func (Task) TableName() string {
	return "tasks"
}
