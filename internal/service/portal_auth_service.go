package service

import (
	"errors"
	"strings"
	"time"

	"github.com/portrait-next/internal/config"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// PortalAuthService 学校门户认证服务
// 门户 Token 只绑定单个订单，学校只能访问自己的订单
type PortalAuthService struct {
	cfg       *config.Config
	orderRepo repository.OrderRepository
}

// NewPortalAuthService 创建门户认证服务实例
func NewPortalAuthService(cfg *config.Config, orderRepo repository.OrderRepository) *PortalAuthService {
	return &PortalAuthService{
		cfg:       cfg,
		orderRepo: orderRepo,
	}
}

// PortalJWTClaims 门户 JWT 声明
type PortalJWTClaims struct {
	OrderID    uint   `json:"order_id"`
	SchoolName string `json:"school_name"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成订单级门户 Token
func (s *PortalAuthService) GenerateJWT(order *models.Order) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.PortalJWT.ExpireHours) * time.Hour)

	claims := PortalJWTClaims{
		OrderID:    order.ID,
		SchoolName: order.SchoolName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.PortalJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析门户 Token
func (s *PortalAuthService) ParseJWT(tokenString string) (*PortalJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &PortalJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.PortalJWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*PortalJWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Login 门户登录（按订单的门户账号密码）
func (s *PortalAuthService) Login(username, password string) (*models.Order, string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	order, err := s.orderRepo.GetByPortalCredentials(username, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if order == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(order)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return order, token, expiresAt, nil
}
