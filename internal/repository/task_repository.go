package repository

import (
	"errors"

	"github.com/portrait-next/internal/models"

	"gorm.io/gorm"
)

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	List(filter TaskListFilter) ([]models.Task, int64, error)
	Delete(id uint) error
	DeleteByOrderAndType(orderID uint, taskType string) (int64, error)
	WithTx(tx *gorm.DB) TaskRepository
}

// GormTaskRepository GORM 实现
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository 创建任务仓库
func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTaskRepository) WithTx(tx *gorm.DB) TaskRepository {
	if tx == nil {
		return r
	}
	return &GormTaskRepository{db: tx}
}

// Create 创建任务
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByID 根据 ID 获取任务
func (r *GormTaskRepository) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// List 任务列表
func (r *GormTaskRepository) List(filter TaskListFilter) ([]models.Task, int64, error) {
	var tasks []models.Task
	query := r.db.Model(&models.Task{})

	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.TaskType != "" {
		query = query.Where("task_type = ?", filter.TaskType)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Delete 删除任务
func (r *GormTaskRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Task{}, id).Error
}

// DeleteByOrderAndType 删除某订单下指定类型的全部任务，返回删除条数
func (r *GormTaskRepository) DeleteByOrderAndType(orderID uint, taskType string) (int64, error) {
	result := r.db.Where("order_id = ? AND task_type = ?", orderID, taskType).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
