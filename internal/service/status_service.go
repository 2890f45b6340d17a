package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/portrait-next/internal/board"
	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/logger"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"gorm.io/gorm"
)

// Notifier 外部看板通知能力（注入实现，失败不影响状态流转）
type Notifier interface {
	CreateCard(ctx context.Context, input board.CardInput) (*board.CardResult, error)
}

// StatusService 订单状态机
// 状态写入、附带列变更、任务清理与路径列表清空在同一事务内提交；
// 外部副作用（看板卡片、目录删除）在提交后尽力执行且不回滚
type StatusService struct {
	orderRepo     repository.OrderRepository
	invoiceRepo   repository.InvoiceRepository
	artworkRepo   repository.ArtworkRepository
	taskRepo      repository.TaskRepository
	notifier      Notifier
	artworkRoot   string
	portalBaseURL string
}

// NewStatusService 创建状态机服务
func NewStatusService(
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	artworkRepo repository.ArtworkRepository,
	taskRepo repository.TaskRepository,
	notifier Notifier,
	artworkRoot string,
	portalBaseURL string,
) *StatusService {
	return &StatusService{
		orderRepo:     orderRepo,
		invoiceRepo:   invoiceRepo,
		artworkRepo:   artworkRepo,
		taskRepo:      taskRepo,
		notifier:      notifier,
		artworkRoot:   artworkRoot,
		portalBaseURL: strings.TrimRight(portalBaseURL, "/"),
	}
}

// UpdateOrderStatus 订单状态流转
// 变更表之外的状态原样写入；目标为空或订单不存在时不产生任何写入；Closed 需发票已支付
func (s *StatusService) UpdateOrderStatus(id uint, target string) (*models.Order, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrStatusInvalid
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	// Closed 守卫读取实时发票状态
	if target == constants.OrderStatusClosed {
		invoice, err := s.invoiceRepo.GetByOrderID(id)
		if err != nil {
			return nil, err
		}
		if invoice == nil || invoice.Status != constants.InvoiceStatusPaid {
			return nil, ErrInvoiceUnpaid
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	updates := map[string]interface{}{}
	switch target {
	case constants.OrderStatusKitPrepared:
		updates["kit_dispatched_at"] = constants.KitNotDispatchedYet
	case constants.OrderStatusKitDispatched:
		updates["kit_received_at"] = constants.KitNotReceivedYet
		updates["kit_dispatched_at"] = now
	case constants.OrderStatusKitReceived:
		updates["kit_dispatched_at"] = constants.KitReceivedMarker
		updates["kit_received_at"] = now
	case constants.OrderStatusKitReturned:
		updates["kit_received_at"] = constants.KitReturnedMarker
	}

	// 状态写入、任务清理与路径列表清空是同一个事务单元
	var deletedTasks int64
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateStatus(id, target, updates); err != nil {
			return err
		}
		switch target {
		case constants.OrderStatusKitReceived:
			n, err := s.taskRepo.WithTx(tx).DeleteByOrderAndType(id, constants.TaskTypeKitFollowUpCall)
			if err != nil {
				return err
			}
			deletedTasks = n
		case constants.OrderStatusKitReturned:
			n, err := s.taskRepo.WithTx(tx).DeleteByOrderAndType(id, constants.TaskTypeKitCompletionFollowUp)
			if err != nil {
				return err
			}
			deletedTasks = n
		case constants.OrderStatusInProduction:
			if err := s.artworkRepo.WithTx(tx).UpdatePathList(id, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if deletedTasks > 0 {
		logger.Infow("task_cleanup_done",
			"order_id", id,
			"target", target,
			"deleted", deletedTasks,
		)
	}

	s.runSideEffects(order, target)

	return s.orderRepo.GetByID(id)
}

// runSideEffects 提交后副作用：看板卡片、画作目录删除
// 每个副作用只尝试一次，失败仅记录日志
func (s *StatusService) runSideEffects(order *models.Order, target string) {
	switch target {
	case constants.OrderStatusKitReturned:
		s.createBoardCard(order, target)
	case constants.OrderStatusInProduction:
		s.removeArtworkFolder(order.ID)
	}
}

func (s *StatusService) createBoardCard(order *models.Order, status string) {
	if s.notifier == nil {
		return
	}

	school := strings.TrimSpace(order.SchoolName)
	if school == "" {
		school = "Unknown School"
	}
	input := board.CardInput{
		Name: fmt.Sprintf("Order #%d - %s", order.ID, school),
		Description: fmt.Sprintf(
			"Order ID: %d\nSchool Name: %s\nStatus: %s\nPortal Link: %s/process-slider/%d\n\n---\nCreated automatically when the kit was returned.",
			order.ID, school, status, s.portalBaseURL, order.ID,
		),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.notifier.CreateCard(ctx, input)
	if err != nil {
		logger.Warnw("board_card_create_failed",
			"order_id", order.ID,
			"error", err,
		)
		return
	}
	logger.Infow("board_card_created",
		"order_id", order.ID,
		"card_id", result.CardID,
		"short_url", result.ShortURL,
	)
}

// removeArtworkFolder 删除订单画作目录（路径列表已在事务内清空）
func (s *StatusService) removeArtworkFolder(orderID uint) {
	dir := filepath.Join(s.artworkRoot, strconv.FormatUint(uint64(orderID), 10))
	if err := os.RemoveAll(dir); err != nil {
		logger.Warnw("artwork_folder_delete_failed",
			"order_id", orderID,
			"dir", dir,
			"error", err,
		)
	}
}
