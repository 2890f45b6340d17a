package service

import (
	"errors"
	"testing"

	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewKitRepository(db),
		repository.NewArtworkRepository(db),
		repository.NewInvoiceRepository(db),
	)
}

func TestCreateOrderCreatesChildRecords(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	order, err := svc.Create(CreateInput{
		Reason:       "Fundraising",
		FirstName:    "Emma ",
		Surname:      " Johnson",
		Organisation: "Hilltop Primary School",
		ArtPacks:     4,
		Email:        "emma.johnson@hilltop.sch.uk",
		FreeSample:   true,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Status != constants.OrderStatusRequested {
		t.Fatalf("expected status %q, got %q", constants.OrderStatusRequested, order.Status)
	}
	if order.KitDispatchedAt != constants.KitNotDispatchedYet {
		t.Fatalf("expected dispatch sentinel, got %q", order.KitDispatchedAt)
	}
	if order.KitReceivedAt != constants.KitNotReceivedYet {
		t.Fatalf("expected received sentinel, got %q", order.KitReceivedAt)
	}
	if order.Quantities != constants.QuantitiesUnconfirmed {
		t.Fatalf("expected quantities sentinel, got %q", order.Quantities)
	}
	if order.PortalUsername != "emmajohnson" {
		t.Fatalf("expected portal username emmajohnson, got %q", order.PortalUsername)
	}
	if len(order.PortalPassword) != 10 {
		t.Fatalf("expected 10 digit portal password, got %q", order.PortalPassword)
	}
	for _, r := range order.PortalPassword {
		if r < '1' || r > '9' {
			t.Fatalf("expected digits 1-9 only, got %q", order.PortalPassword)
		}
	}

	var kitCount, artworkCount, invoiceCount int64
	db.Model(&models.Kit{}).Where("order_id = ?", order.ID).Count(&kitCount)
	db.Model(&models.Artwork{}).Where("order_id = ?", order.ID).Count(&artworkCount)
	db.Model(&models.Invoice{}).Where("order_id = ?", order.ID).Count(&invoiceCount)
	if kitCount != 1 || artworkCount != 1 || invoiceCount != 1 {
		t.Fatalf("expected one kit/artwork/invoice, got %d/%d/%d", kitCount, artworkCount, invoiceCount)
	}

	invoice, err := repository.NewInvoiceRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load invoice failed: %v", err)
	}
	if invoice.Status != constants.InvoiceStatusUngenerated {
		t.Fatalf("expected invoice ungenerated, got %q", invoice.Status)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	cases := []CreateInput{
		{Surname: "Johnson", Email: "a@b.test", ArtPacks: 1},
		{FirstName: "Emma", Email: "a@b.test", ArtPacks: 1},
		{FirstName: "Emma", Surname: "Johnson", ArtPacks: 1},
		{FirstName: "Emma", Surname: "Johnson", Email: "a@b.test", ArtPacks: 0},
	}
	for i, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no orders written, got %d", count)
	}
}

func TestBuildPortalUsernameFallback(t *testing.T) {
	if got := buildPortalUsername("Mary Jane", "Van Der Berg"); got != "maryjanevanderberg" {
		t.Fatalf("expected maryjanevanderberg, got %q", got)
	}
	if got := buildPortalUsername("   ", " "); got != "user" {
		t.Fatalf("expected fallback user, got %q", got)
	}
}

func TestUpdateQuantitiesValidatesJSON(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, nil)
	svc := newOrderService(db)

	if _, err := svc.UpdateQuantities(order.ID, "not json"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for invalid JSON, got %v", err)
	}
	if _, err := svc.UpdateQuantities(order.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank input, got %v", err)
	}

	updated, err := svc.UpdateQuantities(order.ID, `{"Year 1":30,"Year 2":28}`)
	if err != nil {
		t.Fatalf("update quantities failed: %v", err)
	}
	if updated.Quantities != `{"Year 1":30,"Year 2":28}` {
		t.Fatalf("expected quantities stored verbatim, got %q", updated.Quantities)
	}

	if _, err := svc.UpdateQuantities(9999, `{}`); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
