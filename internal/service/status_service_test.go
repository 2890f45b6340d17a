package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/portrait-next/internal/board"
	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"gorm.io/gorm"
)

type recordingNotifier struct {
	inputs []board.CardInput
	fail   bool
}

func (n *recordingNotifier) CreateCard(_ context.Context, input board.CardInput) (*board.CardResult, error) {
	n.inputs = append(n.inputs, input)
	if n.fail {
		return nil, errors.New("board unreachable")
	}
	return &board.CardResult{CardID: "card-1", ShortURL: "https://trello.test/c/card-1"}, nil
}

func newStatusService(t *testing.T, db *gorm.DB, notifier Notifier, artworkRoot string) *StatusService {
	t.Helper()
	return NewStatusService(
		repository.NewOrderRepository(db),
		repository.NewInvoiceRepository(db),
		repository.NewArtworkRepository(db),
		repository.NewTaskRepository(db),
		notifier,
		artworkRoot,
		"http://localhost:3000",
	)
}

func TestUpdateOrderStatusEmptyRejected(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, nil)
	svc := newStatusService(t, db, nil, t.TempDir())

	if _, err := svc.UpdateOrderStatus(order.ID, "  "); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusRequested {
		t.Fatalf("expected status unchanged, got %q", reloaded.Status)
	}
}

func TestUpdateOrderStatusUnlistedStatusWrittenVerbatim(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusInProduction
	})
	svc := newStatusService(t, db, nil, t.TempDir())

	// 变更表之外的流水线状态（如最终包裹寄出）原样写入，不触碰套件时间列
	for _, target := range []string{"Final Package Dispatched", "Order Issue"} {
		updated, err := svc.UpdateOrderStatus(order.ID, target)
		if err != nil {
			t.Fatalf("update to %q failed: %v", target, err)
		}
		if updated.Status != target {
			t.Fatalf("expected status %q written verbatim, got %q", target, updated.Status)
		}
		if updated.KitDispatchedAt != constants.KitNotDispatchedYet {
			t.Fatalf("expected kit_dispatched_at untouched, got %q", updated.KitDispatchedAt)
		}
		if updated.KitReceivedAt != constants.KitNotReceivedYet {
			t.Fatalf("expected kit_received_at untouched, got %q", updated.KitReceivedAt)
		}
	}
}

type failingTaskRepo struct {
	repository.TaskRepository
}

func (r *failingTaskRepo) WithTx(_ *gorm.DB) repository.TaskRepository {
	return r
}

func (r *failingTaskRepo) DeleteByOrderAndType(_ uint, _ string) (int64, error) {
	return 0, errors.New("tasks table unavailable")
}

func TestUpdateOrderStatusTaskDeletionFailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusKitDispatched
	})
	followUp := models.Task{Description: "Call school", OrderID: &order.ID, TaskType: constants.TaskTypeKitFollowUpCall}
	if err := db.Create(&followUp).Error; err != nil {
		t.Fatalf("seed task failed: %v", err)
	}

	svc := NewStatusService(
		repository.NewOrderRepository(db),
		repository.NewInvoiceRepository(db),
		repository.NewArtworkRepository(db),
		&failingTaskRepo{TaskRepository: repository.NewTaskRepository(db)},
		nil,
		t.TempDir(),
		"http://localhost:3000",
	)

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitReceived); err == nil {
		t.Fatal("expected task deletion failure to fail the transition")
	}

	// 状态写入与任务清理同属一个事务单元：清理失败时状态不能提交
	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusKitDispatched {
		t.Fatalf("expected status rolled back, got %q", reloaded.Status)
	}
	var count int64
	if err := db.Model(&models.Task{}).Where("id = ?", followUp.ID).Count(&count).Error; err != nil {
		t.Fatalf("count task failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected follow-up task untouched, got %d", count)
	}
}

func TestUpdateOrderStatusMissingOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newStatusService(t, db, nil, t.TempDir())

	if _, err := svc.UpdateOrderStatus(9999, constants.OrderStatusKitPrepared); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateOrderStatusKitDispatchedStampsColumns(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusKitPrepared
	})
	svc := newStatusService(t, db, nil, t.TempDir())

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitDispatched)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusKitDispatched {
		t.Fatalf("expected status %q, got %q", constants.OrderStatusKitDispatched, updated.Status)
	}
	if updated.KitReceivedAt != constants.KitNotReceivedYet {
		t.Fatalf("expected kit_received_at sentinel, got %q", updated.KitReceivedAt)
	}
	if _, err := time.Parse(time.RFC3339, updated.KitDispatchedAt); err != nil {
		t.Fatalf("expected RFC3339 dispatch timestamp, got %q: %v", updated.KitDispatchedAt, err)
	}
}

func TestUpdateOrderStatusKitPreparedResetsDispatchColumn(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.KitDispatchedAt = "2026-01-02T10:00:00Z"
	})
	svc := newStatusService(t, db, nil, t.TempDir())

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitPrepared)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.KitDispatchedAt != constants.KitNotDispatchedYet {
		t.Fatalf("expected dispatch column reset to sentinel, got %q", updated.KitDispatchedAt)
	}
}

func TestUpdateOrderStatusKitReceivedDeletesFollowUpTasks(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusKitDispatched
	})
	other := seedOrder(t, db, func(o *models.Order) {
		o.Email = "other@school.test"
	})
	svc := newStatusService(t, db, nil, t.TempDir())

	followUp := models.Task{Description: "Call school", OrderID: &order.ID, TaskType: constants.TaskTypeKitFollowUpCall}
	unrelated := models.Task{Description: "Completion call", OrderID: &order.ID, TaskType: constants.TaskTypeKitCompletionFollowUp}
	otherOrders := models.Task{Description: "Call other school", OrderID: &other.ID, TaskType: constants.TaskTypeKitFollowUpCall}
	for _, task := range []*models.Task{&followUp, &unrelated, &otherOrders} {
		if err := db.Create(task).Error; err != nil {
			t.Fatalf("seed task failed: %v", err)
		}
	}

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitReceived)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.KitDispatchedAt != constants.KitReceivedMarker {
		t.Fatalf("expected dispatch column marker %q, got %q", constants.KitReceivedMarker, updated.KitDispatchedAt)
	}
	if _, err := time.Parse(time.RFC3339, updated.KitReceivedAt); err != nil {
		t.Fatalf("expected RFC3339 received timestamp, got %q: %v", updated.KitReceivedAt, err)
	}

	var count int64
	if err := db.Model(&models.Task{}).Where("order_id = ? AND task_type = ?", order.ID, constants.TaskTypeKitFollowUpCall).Count(&count).Error; err != nil {
		t.Fatalf("count tasks failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected follow-up tasks deleted, got %d", count)
	}
	if err := db.Model(&models.Task{}).Where("id IN ?", []uint{unrelated.ID, otherOrders.ID}).Count(&count).Error; err != nil {
		t.Fatalf("count remaining tasks failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected unrelated tasks kept, got %d", count)
	}
}

func TestUpdateOrderStatusKitReturnedCreatesBoardCard(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusKitDispatched
	})
	notifier := &recordingNotifier{}
	svc := newStatusService(t, db, notifier, t.TempDir())

	completion := models.Task{Description: "Chase artwork", OrderID: &order.ID, TaskType: constants.TaskTypeKitCompletionFollowUp}
	if err := db.Create(&completion).Error; err != nil {
		t.Fatalf("seed task failed: %v", err)
	}

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitReturned)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.KitReceivedAt != constants.KitReturnedMarker {
		t.Fatalf("expected received column marker %q, got %q", constants.KitReturnedMarker, updated.KitReceivedAt)
	}

	if len(notifier.inputs) != 1 {
		t.Fatalf("expected exactly one board card, got %d", len(notifier.inputs))
	}
	card := notifier.inputs[0]
	if !strings.Contains(card.Name, "Hilltop Primary School") {
		t.Fatalf("expected card name to carry school name, got %q", card.Name)
	}
	if !strings.Contains(card.Description, "process-slider") {
		t.Fatalf("expected card description to carry portal link, got %q", card.Description)
	}

	var count int64
	if err := db.Model(&models.Task{}).Where("order_id = ? AND task_type = ?", order.ID, constants.TaskTypeKitCompletionFollowUp).Count(&count).Error; err != nil {
		t.Fatalf("count tasks failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected completion tasks deleted, got %d", count)
	}
}

func TestUpdateOrderStatusBoardFailureStillCommits(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusKitDispatched
	})
	svc := newStatusService(t, db, &recordingNotifier{fail: true}, t.TempDir())

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitReturned)
	if err != nil {
		t.Fatalf("expected board failure to be swallowed, got %v", err)
	}
	if updated.Status != constants.OrderStatusKitReturned {
		t.Fatalf("expected status committed, got %q", updated.Status)
	}
}

func TestUpdateOrderStatusInProductionClearsArtwork(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusKitReturned
	})
	root := t.TempDir()
	svc := newStatusService(t, db, nil, root)

	dir := filepath.Join(root, fmt.Sprint(order.ID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "class1.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}
	joined := fmt.Sprintf("%d/class1.png", order.ID)
	if err := repository.NewArtworkRepository(db).UpdatePathList(order.ID, &joined); err != nil {
		t.Fatalf("seed path list failed: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusInProduction); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected artwork folder removed, stat err=%v", err)
	}
	artwork, err := repository.NewArtworkRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("reload artwork failed: %v", err)
	}
	if artwork.DesignFilePath != nil {
		t.Fatalf("expected path list cleared to NULL, got %q", *artwork.DesignFilePath)
	}
}

func TestUpdateOrderStatusClosedRequiresPaidInvoice(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusInProduction
	})
	svc := newStatusService(t, db, nil, t.TempDir())

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusClosed); !errors.Is(err, ErrInvoiceUnpaid) {
		t.Fatalf("expected ErrInvoiceUnpaid, got %v", err)
	}
	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusInProduction {
		t.Fatalf("expected status unchanged on guard violation, got %q", reloaded.Status)
	}

	if err := db.Model(&models.Invoice{}).Where("order_id = ?", order.ID).
		Update("status", constants.InvoiceStatusPaid).Error; err != nil {
		t.Fatalf("mark invoice paid failed: %v", err)
	}

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusClosed)
	if err != nil {
		t.Fatalf("close order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusClosed {
		t.Fatalf("expected status closed, got %q", updated.Status)
	}
}

func TestUpdateOrderStatusIdempotentReapply(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = constants.OrderStatusKitPrepared
	})
	svc := newStatusService(t, db, nil, t.TempDir())

	first, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitDispatched)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	second, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusKitDispatched)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if second.Status != first.Status {
		t.Fatalf("expected stable status, got %q then %q", first.Status, second.Status)
	}
	if second.KitReceivedAt != constants.KitNotReceivedYet {
		t.Fatalf("expected received sentinel after re-apply, got %q", second.KitReceivedAt)
	}
}
