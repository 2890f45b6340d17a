package service

import (
	"strings"

	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"
)

// StaffService 员工账号管理服务
type StaffService struct {
	staffRepo repository.StaffRepository
	auth      *AuthService
}

// NewStaffService 创建员工服务
func NewStaffService(staffRepo repository.StaffRepository, auth *AuthService) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		auth:      auth,
	}
}

// List 员工列表
func (s *StaffService) List() ([]models.Staff, error) {
	return s.staffRepo.List()
}

// Create 创建员工账号
func (s *StaffService) Create(username, password string, isAdmin bool) (*models.Staff, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrValidation
	}
	if err := s.auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStaffExists
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	staff := &models.Staff{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Delete 删除员工账号（默认管理员受保护）
func (s *StaffService) Delete(id uint) error {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}
	if strings.EqualFold(staff.Username, "admin") {
		return ErrStaffProtected
	}
	return s.staffRepo.Delete(id)
}
