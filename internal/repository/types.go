package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	School      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// TaskListFilter 查询任务列表的过滤条件
type TaskListFilter struct {
	Page      int
	PageSize  int
	OrderID   uint
	TaskType  string
	Completed *bool
}
