package repository

import (
	"errors"

	"github.com/portrait-next/internal/models"

	"gorm.io/gorm"
)

// ArtworkRepository 画作数据访问接口
type ArtworkRepository interface {
	Create(artwork *models.Artwork) error
	GetByOrderID(orderID uint) (*models.Artwork, error)
	UpdatePathList(orderID uint, paths *string) error
	WithTx(tx *gorm.DB) ArtworkRepository
}

// GormArtworkRepository GORM 实现
type GormArtworkRepository struct {
	db *gorm.DB
}

// NewArtworkRepository 创建画作仓库
func NewArtworkRepository(db *gorm.DB) *GormArtworkRepository {
	return &GormArtworkRepository{db: db}
}

// WithTx 绑定事务
func (r *GormArtworkRepository) WithTx(tx *gorm.DB) ArtworkRepository {
	if tx == nil {
		return r
	}
	return &GormArtworkRepository{db: tx}
}

// Create 创建画作行
func (r *GormArtworkRepository) Create(artwork *models.Artwork) error {
	return r.db.Create(artwork).Error
}

// GetByOrderID 根据订单 ID 获取画作行
func (r *GormArtworkRepository) GetByOrderID(orderID uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.Where("order_id = ?", orderID).First(&artwork).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artwork, nil
}

// UpdatePathList 写入路径列表（nil 表示清空为 NULL）
func (r *GormArtworkRepository) UpdatePathList(orderID uint, paths *string) error {
	return r.db.Model(&models.Artwork{}).
		Where("order_id = ?", orderID).
		Update("design_file_path", paths).Error
}
