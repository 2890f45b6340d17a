package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/portrait-next/internal/http/response"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) renderOrderDocument(c *gin.Context, name string, build func(*models.Order) ([]byte, error)) {
	id, ok := parseIDParam(c, "id")
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

	pdf, err := build(order)
	if err != nil {
		if errors.Is(err, service.ErrQuantitiesUnconfirmed) {
			respondError(c, response.CodeBadRequest, "quantities are not confirmed yet", nil)
			return
		}
		respondError(c, response.CodeInternal, "document render failed", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%d.pdf", name, order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// AdminPackingSlip 装箱单 PDF
func (h *Handler) AdminPackingSlip(c *gin.Context) {
	h.renderOrderDocument(c, "packing_slip", h.DocumentService.PackingSlip)
}

// AdminNextSteps 学校指引 PDF
func (h *Handler) AdminNextSteps(c *gin.Context) {
	h.renderOrderDocument(c, "next_steps", h.DocumentService.NextSteps)
}

// AdminChecklist 套件检查单 PDF
func (h *Handler) AdminChecklist(c *gin.Context) {
	h.renderOrderDocument(c, "checklist", h.DocumentService.Checklist)
}

// AdminFinalPackageChecklist 成品包装检查单 PDF（需先确认数量）
func (h *Handler) AdminFinalPackageChecklist(c *gin.Context) {
	h.renderOrderDocument(c, "final_package_checklist", h.DocumentService.FinalPackageChecklist)
}
