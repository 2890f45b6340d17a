package main

import (
	"fmt"
	"time"

	"github.com/portrait-next/internal/config"
	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/logger"
	"github.com/portrait-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认员工账号
	if err := models.InitDefaultStaff("", ""); err != nil {
		stdLog.Printf("Failed to init default staff: %v", err)
	}

	now := time.Now().UTC()
	dispatchedAt := now.Add(-72 * time.Hour).Format(time.RFC3339)
	receivedAt := now.Add(-24 * time.Hour).Format(time.RFC3339)

	// 演示订单：覆盖从新申请到制作中的各个状态
	orders := []models.Order{
		{
			Reason:            "Fundraising for new library books",
			Product:           "Self Portrait Art Pack",
			FreeSample:        true,
			FirstName:         "Emma",
			LastName:          "Johnson",
			SchoolName:        "Hilltop Primary School",
			Position:          "PTA Chair",
			ArtPacks:          4,
			Referral:          "Google",
			Email:             "emma.johnson@hilltop.sch.uk",
			Phone:             "01202 555101",
			AddressLine1:      "14 Hilltop Road",
			City:              "Bournemouth",
			County:            "Dorset",
			Postcode:          "BH1 1AA",
			AgreeToPromotions: true,
			Status:            constants.OrderStatusRequested,
			PortalUsername:    "emmajohnson",
			PortalPassword:    "4827391656",
			KitDispatchedAt:   constants.KitNotDispatchedYet,
			KitReceivedAt:     constants.KitNotReceivedYet,
			Quantities:        constants.QuantitiesUnconfirmed,
		},
		{
			Reason:               "Annual art fundraiser",
			Product:              "Self Portrait Art Pack",
			FirstName:            "Oliver",
			LastName:             "Barnes",
			SchoolName:           "Riverside Academy",
			Position:             "Art Teacher",
			ArtPacks:             7,
			Referral:             "Word of mouth",
			Email:                "o.barnes@riverside.ac.uk",
			Phone:                "01202 555202",
			AddressLine1:         "3 Riverside Lane",
			AddressLine2:         "Unit 2",
			City:                 "Poole",
			County:               "Dorset",
			Postcode:             "BH15 2BB",
			DeliveryInstructions: "Leave with reception",
			Status:               constants.OrderStatusKitDispatched,
			PortalUsername:       "oliverbarnes",
			PortalPassword:       "9153728464",
			KitDispatchedAt:      dispatchedAt,
			KitReceivedAt:        constants.KitNotReceivedYet,
			Quantities:           constants.QuantitiesUnconfirmed,
		},
		{
			Reason:          "Playground equipment fund",
			Product:         "Self Portrait Art Pack",
			FirstName:       "Sophie",
			LastName:        "Clarke",
			SchoolName:      "Meadow Lane Infants",
			Position:        "Headteacher",
			ArtPacks:        2,
			Email:           "head@meadowlane.sch.uk",
			Phone:           "01202 555303",
			AddressLine1:    "Meadow Lane",
			City:            "Christchurch",
			County:          "Dorset",
			Postcode:        "BH23 3CC",
			Status:          constants.OrderStatusInProduction,
			PortalUsername:  "sophieclarke",
			PortalPassword:  "6281947353",
			KitDispatchedAt: constants.KitReceivedMarker,
			KitReceivedAt:   receivedAt,
			Quantities:      `{"Reception":28,"Year 1":31,"Year 2":27}`,
		},
	}

	for i := range orders {
		order := &orders[i]
		var existing models.Order
		if err := models.DB.Where("email = ?", order.Email).First(&existing).Error; err == nil {
			stdLog.Printf("Order already exists: %s", order.Email)
			continue
		}
		if err := models.DB.Create(order).Error; err != nil {
			stdLog.Printf("Failed to create order for %s: %v", order.Email, err)
			continue
		}

		// 子记录与真实下单流程保持一致
		if err := models.DB.Create(&models.Kit{OrderID: order.ID}).Error; err != nil {
			stdLog.Printf("Failed to create kit for order %d: %v", order.ID, err)
		}
		artworkStatus := constants.ArtworkStatusNotReceived
		if order.Status == constants.OrderStatusInProduction {
			artworkStatus = constants.ArtworkStatusInArtwork
		}
		if err := models.DB.Create(&models.Artwork{OrderID: order.ID, Status: artworkStatus}).Error; err != nil {
			stdLog.Printf("Failed to create artwork for order %d: %v", order.ID, err)
		}
		invoice := models.Invoice{OrderID: order.ID, Status: constants.InvoiceStatusUngenerated}
		if order.Status == constants.OrderStatusInProduction {
			invoice.Status = constants.InvoiceStatusGenerated
			invoice.Amount = models.NewMoneyFromDecimal(
				decimal.NewFromInt(int64(order.ArtPacks)).Mul(decimal.NewFromInt(100)).Mul(decimal.NewFromFloat(1.05)),
			)
		}
		if err := models.DB.Create(&invoice).Error; err != nil {
			stdLog.Printf("Failed to create invoice for order %d: %v", order.ID, err)
		}
		stdLog.Printf("Created order: %s (%s)", order.SchoolName, order.Status)
	}

	// 演示任务：已派出套件的回访电话
	var dispatched models.Order
	if err := models.DB.Where("status = ?", constants.OrderStatusKitDispatched).First(&dispatched).Error; err == nil {
		var existingTask models.Task
		if err := models.DB.Where("order_id = ? AND task_type = ?", dispatched.ID, constants.TaskTypeKitFollowUpCall).
			First(&existingTask).Error; err != nil {
			due := now.Add(7 * 24 * time.Hour)
			task := models.Task{
				Description: fmt.Sprintf("Call %s to check the kit arrived", dispatched.SchoolName),
				DueDate:     &due,
				OrderID:     &dispatched.ID,
				TaskType:    constants.TaskTypeKitFollowUpCall,
			}
			if err := models.DB.Create(&task).Error; err != nil {
				stdLog.Printf("Failed to create follow-up task: %v", err)
			} else {
				stdLog.Printf("Created follow-up task for order %d", dispatched.ID)
			}
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- Default staff account")
	fmt.Println("- 3 Orders (Requested / Kit Dispatched / In Production)")
	fmt.Println("- Kits, artworks and invoices per order")
	fmt.Println("- 1 follow-up call task")
}
