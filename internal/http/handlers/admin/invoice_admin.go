package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/portrait-next/internal/http/response"
	"github.com/portrait-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateInvoiceStatusRequest 发票状态请求
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateInvoiceStatus 更新发票状态
func (h *Handler) AdminUpdateInvoiceStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	invoice, err := h.InvoiceService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStatusInvalid):
			respondError(c, response.CodeBadRequest, "unknown invoice status", nil)
		case errors.Is(err, service.ErrInvoiceNotFound):
			respondError(c, response.CodeNotFound, "invoice not found", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "invoice update failed", err)
		}
		return
	}

	response.Success(c, invoice)
}

// AdminDownloadInvoice 下载发票 PDF（即时渲染）
func (h *Handler) AdminDownloadInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pdf, invoice, err := h.InvoiceService.Download(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			respondError(c, response.CodeNotFound, "invoice not found", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "invoice render failed", err)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%d.pdf", invoice.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
