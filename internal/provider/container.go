package provider

import (
	"time"

	"github.com/portrait-next/internal/board"
	"github.com/portrait-next/internal/cache"
	"github.com/portrait-next/internal/config"
	"github.com/portrait-next/internal/logger"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"
	"github.com/portrait-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	StaffRepo   repository.StaffRepository
	OrderRepo   repository.OrderRepository
	KitRepo     repository.KitRepository
	ArtworkRepo repository.ArtworkRepository
	InvoiceRepo repository.InvoiceRepository
	TaskRepo    repository.TaskRepository

	// Services
	AuthService       *service.AuthService
	PortalAuthService *service.PortalAuthService
	OrderService      *service.OrderService
	StatusService     *service.StatusService
	ArtworkService    *service.ArtworkService
	InvoiceService    *service.InvoiceService
	DocumentService   *service.DocumentService
	TaskService       *service.TaskService
	StaffService      *service.StaffService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config: cfg,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StaffRepo = repository.NewStaffRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.KitRepo = repository.NewKitRepository(db)
	c.ArtworkRepo = repository.NewArtworkRepository(db)
	c.InvoiceRepo = repository.NewInvoiceRepository(db)
	c.TaskRepo = repository.NewTaskRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.StaffRepo)
	c.PortalAuthService = service.NewPortalAuthService(c.Config, c.OrderRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.KitRepo, c.ArtworkRepo, c.InvoiceRepo)
	c.DocumentService = service.NewDocumentService()
	c.InvoiceService = service.NewInvoiceService(c.InvoiceRepo, c.OrderRepo, c.DocumentService)
	c.ArtworkService = service.NewArtworkService(
		c.ArtworkRepo,
		c.OrderRepo,
		c.Config.Artwork.Root,
		c.Config.Artwork.MaxSize,
		c.Config.Artwork.AllowedTypes,
	)
	c.TaskService = service.NewTaskService(c.TaskRepo, c.OrderRepo)
	c.StaffService = service.NewStaffService(c.StaffRepo, c.AuthService)

	// 看板客户端未启用时 notifier 为 nil，状态服务会跳过建卡。
	var notifier service.Notifier
	if c.Config.Board.Enabled {
		notifier = board.NewClient(board.Config{
			BaseURL: c.Config.Board.BaseURL,
			Key:     c.Config.Board.Key,
			Token:   c.Config.Board.Token,
			ListID:  c.Config.Board.ListID,
			Timeout: time.Duration(c.Config.Board.TimeoutMS) * time.Millisecond,
		})
	}
	c.StatusService = service.NewStatusService(
		c.OrderRepo,
		c.InvoiceRepo,
		c.ArtworkRepo,
		c.TaskRepo,
		notifier,
		c.Config.Artwork.Root,
		c.Config.Portal.BaseURL,
	)
}
