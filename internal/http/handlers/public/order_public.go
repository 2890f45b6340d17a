package public

import (
	"errors"

	"github.com/portrait-next/internal/http/response"
	"github.com/portrait-next/internal/service"

	"github.com/gin-gonic/gin"
)

// KitRequest 套件申请请求（前台表单使用 camelCase 字段名）
type KitRequest struct {
	Reason               string `json:"reason"`
	Product              string `json:"product"`
	FreeSample           bool   `json:"freeSample"`
	FirstName            string `json:"firstName" binding:"required"`
	Surname              string `json:"surname" binding:"required"`
	Organisation         string `json:"organisation"`
	Position             string `json:"position"`
	ArtPacks             int    `json:"artPacks" binding:"required"`
	Referral             string `json:"referral"`
	Email                string `json:"email" binding:"required"`
	Phone                string `json:"phone"`
	AddressLine1         string `json:"addressLine1"`
	AddressLine2         string `json:"addressLine2"`
	City                 string `json:"city"`
	County               string `json:"county"`
	Postcode             string `json:"postcode"`
	DeliveryInstructions string `json:"deliveryInstructions"`
	AgreeToPromotions    bool   `json:"agreeToPromotions"`
}

// RequestKit 学校申请画作套件
func (h *Handler) RequestKit(c *gin.Context) {
	var req KitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.Create(service.CreateInput{
		Reason:               req.Reason,
		Product:              req.Product,
		FreeSample:           req.FreeSample,
		FirstName:            req.FirstName,
		Surname:              req.Surname,
		Organisation:         req.Organisation,
		Position:             req.Position,
		ArtPacks:             req.ArtPacks,
		Referral:             req.Referral,
		Email:                req.Email,
		Phone:                req.Phone,
		AddressLine1:         req.AddressLine1,
		AddressLine2:         req.AddressLine2,
		City:                 req.City,
		County:               req.County,
		Postcode:             req.Postcode,
		DeliveryInstructions: req.DeliveryInstructions,
		AgreeToPromotions:    req.AgreeToPromotions,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, response.CodeBadRequest, "name, email and at least one art pack are required", nil)
			return
		}
		respondError(c, response.CodeInternal, "order create failed", err)
		return
	}

	requestLog(c).Infow("kit_requested",
		"order_id", order.ID,
		"school_name", order.SchoolName,
		"art_packs", order.ArtPacks,
	)
	response.Success(c, gin.H{
		"id":     order.ID,
		"status": order.Status,
	})
}
