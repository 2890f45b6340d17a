package admin

import (
	"errors"

	"github.com/portrait-next/internal/http/response"
	"github.com/portrait-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListStaff 员工账号列表
func (h *Handler) AdminListStaff(c *gin.Context) {
	staff, err := h.StaffService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "staff list failed", err)
		return
	}
	response.Success(c, staff)
}

// CreateStaffRequest 创建员工请求
type CreateStaffRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// AdminCreateStaff 创建员工账号
func (h *Handler) AdminCreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	staff, err := h.StaffService.Create(req.Username, req.Password, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffExists):
			respondError(c, response.CodeBadRequest, "username already taken", nil)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "username or password invalid", nil)
		default:
			respondError(c, response.CodeInternal, "staff create failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"id":       staff.ID,
		"username": staff.Username,
		"is_admin": staff.IsAdmin,
	})
}

// AdminDeleteStaff 删除员工账号
func (h *Handler) AdminDeleteStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.StaffService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrStaffNotFound):
			respondError(c, response.CodeNotFound, "staff not found", nil)
		case errors.Is(err, service.ErrStaffProtected):
			respondError(c, response.CodeBadRequest, "the default admin account cannot be deleted", nil)
		default:
			respondError(c, response.CodeInternal, "staff delete failed", err)
		}
		return
	}

	response.Success(c, nil)
}
