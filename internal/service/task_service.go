package service

import (
	"strings"
	"time"

	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"
)

// TaskService 跟进任务服务
type TaskService struct {
	taskRepo  repository.TaskRepository
	orderRepo repository.OrderRepository
}

// NewTaskService 创建任务服务
func NewTaskService(taskRepo repository.TaskRepository, orderRepo repository.OrderRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		orderRepo: orderRepo,
	}
}

// CreateTaskInput 创建任务输入
type CreateTaskInput struct {
	Description string
	DueDate     *time.Time
	OrderID     *uint
	TaskType    string
}

// Create 创建任务（描述缺省为 N/A，订单关联可选）
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = "N/A"
	}

	if input.OrderID != nil && *input.OrderID != 0 {
		order, err := s.orderRepo.GetByID(*input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
	}

	task := &models.Task{
		Description: description,
		DueDate:     input.DueDate,
		OrderID:     input.OrderID,
		TaskType:    strings.TrimSpace(input.TaskType),
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// List 任务列表
func (s *TaskService) List(filter repository.TaskListFilter) ([]models.Task, int64, error) {
	return s.taskRepo.List(filter)
}

// Delete 删除任务
func (s *TaskService) Delete(id uint) error {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	return s.taskRepo.Delete(id)
}
