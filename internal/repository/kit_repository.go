package repository

import (
	"errors"

	"github.com/portrait-next/internal/models"

	"gorm.io/gorm"
)

// KitRepository 套件数据访问接口
type KitRepository interface {
	Create(kit *models.Kit) error
	GetByOrderID(orderID uint) (*models.Kit, error)
	Update(kit *models.Kit) error
	WithTx(tx *gorm.DB) KitRepository
}

// GormKitRepository GORM 实现
type GormKitRepository struct {
	db *gorm.DB
}

// NewKitRepository 创建套件仓库
func NewKitRepository(db *gorm.DB) *GormKitRepository {
	return &GormKitRepository{db: db}
}

// WithTx 绑定事务
func (r *GormKitRepository) WithTx(tx *gorm.DB) KitRepository {
	if tx == nil {
		return r
	}
	return &GormKitRepository{db: tx}
}

// Create 创建套件
func (r *GormKitRepository) Create(kit *models.Kit) error {
	return r.db.Create(kit).Error
}

// GetByOrderID 根据订单 ID 获取套件
func (r *GormKitRepository) GetByOrderID(orderID uint) (*models.Kit, error) {
	var kit models.Kit
	if err := r.db.Where("order_id = ?", orderID).First(&kit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &kit, nil
}

// Update 更新套件
func (r *GormKitRepository) Update(kit *models.Kit) error {
	return r.db.Save(kit).Error
}
