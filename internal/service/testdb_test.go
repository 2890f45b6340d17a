package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Staff{},
		&models.Order{},
		&models.Kit{},
		&models.Artwork{},
		&models.Invoice{},
		&models.Task{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	prev := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = prev
	})
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, mutate func(*models.Order)) *models.Order {
	t.Helper()

	order := &models.Order{
		FirstName:       "Emma",
		LastName:        "Johnson",
		SchoolName:      "Hilltop Primary School",
		ArtPacks:        4,
		Email:           "emma.johnson@hilltop.sch.uk",
		Status:          constants.OrderStatusRequested,
		PortalUsername:  "emmajohnson",
		PortalPassword:  "4827391656",
		KitDispatchedAt: constants.KitNotDispatchedYet,
		KitReceivedAt:   constants.KitNotReceivedYet,
		Quantities:      constants.QuantitiesUnconfirmed,
	}
	if mutate != nil {
		mutate(order)
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	if err := db.Create(&models.Kit{OrderID: order.ID}).Error; err != nil {
		t.Fatalf("seed kit failed: %v", err)
	}
	if err := db.Create(&models.Artwork{OrderID: order.ID, Status: constants.ArtworkStatusNotReceived}).Error; err != nil {
		t.Fatalf("seed artwork failed: %v", err)
	}
	if err := db.Create(&models.Invoice{OrderID: order.ID, Status: constants.InvoiceStatusUngenerated}).Error; err != nil {
		t.Fatalf("seed invoice failed: %v", err)
	}
	return order
}
