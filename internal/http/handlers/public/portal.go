package public

import (
	"errors"
	"time"

	"github.com/portrait-next/internal/http/handlers/shared"
	"github.com/portrait-next/internal/http/response"
	"github.com/portrait-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PortalLoginRequest 门户登录请求
type PortalLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PortalLogin 学校门户登录（凭下单时生成的账号密码换取令牌）
func (h *Handler) PortalLogin(c *gin.Context) {
	var req PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, token, expiresAt, err := h.PortalAuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "portal login failed", err)
		return
	}

	requestLog(c).Infow("portal_login", "order_id", order.ID, "school_name", order.SchoolName)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"order": gin.H{
			"id":          order.ID,
			"status":      order.Status,
			"school_name": order.SchoolName,
		},
	})
}

func portalOrderID(c *gin.Context) (uint, bool) {
	return shared.GetContextUintWithKeys(c, "order_id", "invalid order id", "order id type invalid")
}

// PortalGetOrder 门户订单详情（仅限令牌所属订单）
func (h *Handler) PortalGetOrder(c *gin.Context) {
	id, ok := portalOrderID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.Success(c, order)
}

// PortalQuantitiesRequest 门户数量确认请求
type PortalQuantitiesRequest struct {
	Quantities string `json:"quantities" binding:"required"`
}

// PortalUpdateQuantities 学校确认各班数量（JSON 字符串）
func (h *Handler) PortalUpdateQuantities(c *gin.Context) {
	id, ok := portalOrderID(c)
	if !ok {
		return
	}

	var req PortalQuantitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdateQuantities(id, req.Quantities)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "quantities must be valid JSON", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "quantities update failed", err)
		}
		return
	}

	requestLog(c).Infow("portal_quantities_confirmed", "order_id", order.ID)
	response.Success(c, gin.H{
		"id":         order.ID,
		"quantities": order.Quantities,
	})
}
