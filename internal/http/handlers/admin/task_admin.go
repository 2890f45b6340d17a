package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/portrait-next/internal/http/response"
	"github.com/portrait-next/internal/repository"
	"github.com/portrait-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	OrderID     *uint  `json:"order_id"`
	TaskType    string `json:"task_type"`
}

// AdminCreateTask 创建任务
func (h *Handler) AdminCreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	var dueDate *time.Time
	if raw := strings.TrimSpace(req.DueDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, raw)
		}
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid due_date", err)
			return
		}
		dueDate = &parsed
	}

	task, err := h.TaskService.Create(service.CreateTaskInput{
		Description: req.Description,
		DueDate:     dueDate,
		OrderID:     req.OrderID,
		TaskType:    req.TaskType,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "task create failed", err)
		return
	}

	response.Success(c, task)
}

// AdminListTasks 任务列表
func (h *Handler) AdminListTasks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var orderID uint
	if raw := strings.TrimSpace(c.Query("order_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			orderID = uint(parsed)
		}
	}

	tasks, total, err := h.TaskService.List(repository.TaskListFilter{
		Page:     page,
		PageSize: pageSize,
		OrderID:  orderID,
		TaskType: strings.TrimSpace(c.Query("task_type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "task list failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, tasks, pagination)
}

// AdminDeleteTask 删除任务
func (h *Handler) AdminDeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.TaskService.Delete(id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			respondError(c, response.CodeNotFound, "task not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "task delete failed", err)
		return
	}

	response.Success(c, nil)
}
