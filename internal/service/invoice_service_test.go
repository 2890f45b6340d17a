package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newInvoiceService(db *gorm.DB) *InvoiceService {
	return NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewOrderRepository(db),
		NewDocumentService(),
	)
}

func TestInvoiceAmountGeneratedOnceOnEdge(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.ArtPacks = 4
	})
	svc := newInvoiceService(db)

	invoiceRepo := repository.NewInvoiceRepository(db)
	seeded, err := invoiceRepo.GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load invoice failed: %v", err)
	}

	generated, err := svc.UpdateStatus(seeded.ID, constants.InvoiceStatusGenerated)
	if err != nil {
		t.Fatalf("generate invoice failed: %v", err)
	}
	want := decimal.RequireFromString("420.00")
	if !generated.Amount.Equal(want) {
		t.Fatalf("expected amount 420.00, got %s", generated.Amount.String())
	}

	// 后续状态变化不应重算金额
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("art_packs", 9).Error; err != nil {
		t.Fatalf("update art packs failed: %v", err)
	}
	sent, err := svc.UpdateStatus(seeded.ID, constants.InvoiceStatusSent)
	if err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	if !sent.Amount.Equal(want) {
		t.Fatalf("expected amount unchanged after sent, got %s", sent.Amount.String())
	}
	regenerated, err := svc.UpdateStatus(seeded.ID, constants.InvoiceStatusGenerated)
	if err != nil {
		t.Fatalf("back to generated failed: %v", err)
	}
	if !regenerated.Amount.Equal(want) {
		t.Fatalf("expected amount unchanged off the generation edge, got %s", regenerated.Amount.String())
	}
}

func TestInvoiceUpdateStatusWritesAnyNonEmptyValue(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, nil)
	svc := newInvoiceService(db)

	invoice, err := repository.NewInvoiceRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load invoice failed: %v", err)
	}

	// 发票状态不是闭集，任意非空值原样写入
	updated, err := svc.UpdateStatus(invoice.ID, "Invoice Disputed")
	if err != nil {
		t.Fatalf("write free-form status failed: %v", err)
	}
	if updated.Status != "Invoice Disputed" {
		t.Fatalf("expected status written verbatim, got %q", updated.Status)
	}
	if !updated.Amount.Equal(decimal.Zero) {
		t.Fatalf("expected amount untouched off the generation edge, got %s", updated.Amount.String())
	}

	if _, err := svc.UpdateStatus(invoice.ID, ""); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid for empty status, got %v", err)
	}
	if _, err := svc.UpdateStatus(9999, constants.InvoiceStatusSent); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

type countingInvoiceRenderer struct {
	inner *DocumentService
	calls int
	fail  bool
}

func (r *countingInvoiceRenderer) Invoice(order *models.Order, invoice *models.Invoice) ([]byte, error) {
	r.calls++
	if r.fail {
		return nil, errors.New("renderer unavailable")
	}
	return r.inner.Invoice(order, invoice)
}

func TestInvoiceDocumentRenderedOncePerGenerationEdge(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.ArtPacks = 3
	})
	renderer := &countingInvoiceRenderer{inner: NewDocumentService()}
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewOrderRepository(db),
		renderer,
	)

	invoice, err := repository.NewInvoiceRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load invoice failed: %v", err)
	}

	if _, err := svc.UpdateStatus(invoice.ID, constants.InvoiceStatusGenerated); err != nil {
		t.Fatalf("generate invoice failed: %v", err)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected exactly one render on the generation edge, got %d", renderer.calls)
	}

	// 非生成边不触发渲染
	if _, err := svc.UpdateStatus(invoice.ID, constants.InvoiceStatusGenerated); err != nil {
		t.Fatalf("re-apply generated failed: %v", err)
	}
	if _, err := svc.UpdateStatus(invoice.ID, constants.InvoiceStatusSent); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	if _, err := svc.UpdateStatus(invoice.ID, constants.InvoiceStatusGenerated); err != nil {
		t.Fatalf("back to generated failed: %v", err)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected no renders off the edge, got %d", renderer.calls)
	}
}

func TestInvoiceRenderFailureDoesNotBlockGeneration(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.ArtPacks = 2
	})
	renderer := &countingInvoiceRenderer{inner: NewDocumentService(), fail: true}
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewOrderRepository(db),
		renderer,
	)

	invoice, err := repository.NewInvoiceRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load invoice failed: %v", err)
	}

	generated, err := svc.UpdateStatus(invoice.ID, constants.InvoiceStatusGenerated)
	if err != nil {
		t.Fatalf("expected render failure to be swallowed, got %v", err)
	}
	if generated.Status != constants.InvoiceStatusGenerated {
		t.Fatalf("expected status committed, got %q", generated.Status)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected one render attempt, got %d", renderer.calls)
	}
}

func TestInvoiceDownloadRendersPDF(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, func(o *models.Order) {
		o.ArtPacks = 2
	})
	svc := newInvoiceService(db)

	invoice, err := repository.NewInvoiceRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load invoice failed: %v", err)
	}
	if _, err := svc.UpdateStatus(invoice.ID, constants.InvoiceStatusGenerated); err != nil {
		t.Fatalf("generate invoice failed: %v", err)
	}

	pdf, downloaded, err := svc.Download(invoice.ID)
	if err != nil {
		t.Fatalf("download invoice failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("expected PDF output, got prefix %q", pdf[:min(8, len(pdf))])
	}
	if downloaded.ID != invoice.ID {
		t.Fatalf("expected invoice %d, got %d", invoice.ID, downloaded.ID)
	}
}
