package models

import (
	"strings"

	"github.com/portrait-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultStaff 初始化默认管理员账号
func InitDefaultStaff(username, password string) error {
	var count int64
	DB.Model(&Staff{}).Count(&count)

	// 如果已有员工账号，确保默认 admin 保持管理员身份
	if count > 0 {
		if err := DB.Model(&Staff{}).Where("username = ?", "admin").Update("is_admin", true).Error; err != nil {
			logger.Warnw("ensure_default_staff_admin_failed", "error", err)
		}
		return nil
	}

	// 创建默认管理员
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := Staff{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      strings.EqualFold(strings.TrimSpace(username), "admin"),
	}

	if err := DB.Create(&staff).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_staff_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_staff_password_change_required", "username", username)
	} else {
		logger.Warnw("default_staff_created", "username", username, "password_hidden", true)
	}

	return nil
}
