package service

import (
	"crypto/rand"
	"encoding/json"
	"strings"

	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	kitRepo     repository.KitRepository
	artworkRepo repository.ArtworkRepository
	invoiceRepo repository.InvoiceRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	kitRepo repository.KitRepository,
	artworkRepo repository.ArtworkRepository,
	invoiceRepo repository.InvoiceRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		kitRepo:     kitRepo,
		artworkRepo: artworkRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreateInput 套件申请输入
type CreateInput struct {
	Reason               string
	Product              string
	FreeSample           bool
	FirstName            string
	Surname              string
	Organisation         string
	Position             string
	ArtPacks             int
	Referral             string
	Email                string
	Phone                string
	AddressLine1         string
	AddressLine2         string
	City                 string
	County               string
	Postcode             string
	DeliveryInstructions string
	AgreeToPromotions    bool
}

// Create 创建订单及其子记录（套件、画作、发票同事务落库）
func (s *OrderService) Create(input CreateInput) (*models.Order, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.Surname = strings.TrimSpace(input.Surname)
	input.Email = strings.TrimSpace(input.Email)
	if input.FirstName == "" || input.Surname == "" || input.Email == "" {
		return nil, ErrValidation
	}
	if input.ArtPacks < 1 {
		return nil, ErrValidation
	}

	order := &models.Order{
		Reason:               input.Reason,
		Product:              input.Product,
		FreeSample:           input.FreeSample,
		FirstName:            input.FirstName,
		LastName:             input.Surname,
		SchoolName:           strings.TrimSpace(input.Organisation),
		Position:             input.Position,
		ArtPacks:             input.ArtPacks,
		Referral:             input.Referral,
		Email:                input.Email,
		Phone:                input.Phone,
		AddressLine1:         input.AddressLine1,
		AddressLine2:         input.AddressLine2,
		City:                 input.City,
		County:               input.County,
		Postcode:             input.Postcode,
		DeliveryInstructions: input.DeliveryInstructions,
		AgreeToPromotions:    input.AgreeToPromotions,
		Status:               constants.OrderStatusRequested,
		PortalUsername:       buildPortalUsername(input.FirstName, input.Surname),
		PortalPassword:       generatePortalPassword(),
		KitDispatchedAt:      constants.KitNotDispatchedYet,
		KitReceivedAt:        constants.KitNotReceivedYet,
		Quantities:           constants.QuantitiesUnconfirmed,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		if err := s.kitRepo.WithTx(tx).Create(&models.Kit{OrderID: order.ID}); err != nil {
			return err
		}
		if err := s.artworkRepo.WithTx(tx).Create(&models.Artwork{
			OrderID: order.ID,
			Status:  constants.ArtworkStatusNotReceived,
		}); err != nil {
			return err
		}
		if err := s.invoiceRepo.WithTx(tx).Create(&models.Invoice{
			OrderID: order.ID,
			Status:  constants.InvoiceStatusUngenerated,
		}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(order.ID)
}

// Get 获取订单详情
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// UpdateQuantities 写入确认后的各班数量
// 入参必须是合法 JSON；存储为字符串，未确认时列内为哨兵值
func (s *OrderService) UpdateQuantities(id uint, quantities string) (*models.Order, error) {
	quantities = strings.TrimSpace(quantities)
	if quantities == "" || !json.Valid([]byte(quantities)) {
		return nil, ErrValidation
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateQuantities(id, quantities); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(id)
}

// buildPortalUsername 门户账号：小写的名+姓（去空格），为空时回退 user
func buildPortalUsername(firstName, surname string) string {
	username := strings.ToLower(firstName) + strings.ToLower(surname)
	username = strings.ReplaceAll(username, " ", "")
	if username == "" {
		return "user"
	}
	return username
}

// generatePortalPassword 门户密码：10 位 1-9 随机数字
func generatePortalPassword() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "1234567890"
	}
	digits := make([]byte, 10)
	for i, b := range buf {
		digits[i] = '1' + b%9
	}
	return string(digits)
}
