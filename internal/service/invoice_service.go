package service

import (
	"strings"

	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/logger"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"github.com/shopspring/decimal"
)

// invoiceRenderer 发票 PDF 渲染能力
type invoiceRenderer interface {
	Invoice(order *models.Order, invoice *models.Invoice) ([]byte, error)
}

// InvoiceService 发票服务
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	documents   invoiceRenderer
}

// NewInvoiceService 创建发票服务
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	documents invoiceRenderer,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		documents:   documents,
	}
}

// invoiceAmount 发票金额：每画材包 100，外加 5% 税
func invoiceAmount(artPacks int) models.Money {
	amount := decimal.NewFromInt(int64(artPacks)).
		Mul(decimal.NewFromInt(100)).
		Mul(decimal.NewFromFloat(1.05))
	return models.NewMoneyFromDecimal(amount)
}

// UpdateStatus 更新发票状态
// 发票状态不做闭集校验，任意非空值原样写入；
// 仅 Ungenerated → Generated 这一条边触发金额计算与单据生成，其余组合只写状态
func (s *InvoiceService) UpdateStatus(invoiceID uint, newStatus string) (*models.Invoice, error) {
	newStatus = strings.TrimSpace(newStatus)
	if newStatus == "" {
		return nil, ErrStatusInvalid
	}

	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	generate := invoice.Status == constants.InvoiceStatusUngenerated &&
		newStatus == constants.InvoiceStatusGenerated
	var order *models.Order
	if generate {
		order, err = s.orderRepo.GetByID(invoice.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
		invoice.Amount = invoiceAmount(order.ArtPacks)
	}

	invoice.Status = newStatus
	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	if generate {
		// 这条边恰好触发一次单据生成；渲染失败不回退状态
		if _, err := s.documents.Invoice(order, invoice); err != nil {
			logger.Warnw("invoice_render_failed",
				"invoice_id", invoice.ID,
				"order_id", invoice.OrderID,
				"error", err,
			)
		}
		logger.Infow("invoice_generated",
			"invoice_id", invoice.ID,
			"order_id", invoice.OrderID,
			"amount", invoice.Amount.String(),
		)
	}
	return invoice, nil
}

// Get 获取发票
func (s *InvoiceService) Get(invoiceID uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// Download 渲染发票 PDF（即时生成，不落盘）
func (s *InvoiceService) Download(invoiceID uint) ([]byte, *models.Invoice, error) {
	invoice, err := s.Get(invoiceID)
	if err != nil {
		return nil, nil, err
	}
	order, err := s.orderRepo.GetByID(invoice.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrOrderNotFound
	}

	pdf, err := s.documents.Invoice(order, invoice)
	if err != nil {
		return nil, nil, err
	}
	return pdf, invoice, nil
}
