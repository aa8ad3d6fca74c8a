package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"order_studio/internal/config"
	"order_studio/internal/database"
	"order_studio/internal/models"
	"order_studio/internal/repository"
	"order_studio/internal/store"
)

// Resets the ledger table and seeds a couple of demo orders. Meant for
// fresh development environments only.
func main() {
	fmt.Println("Initializing database...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Recreating ledger table...")
	if err := db.Migrator().DropTable(&store.Record{}); err != nil {
		log.Printf("Warning: Error dropping ledger table: %v", err)
	}
	if err := db.AutoMigrate(&store.Record{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	repo := repository.NewOrderRepository(store.NewGormStore(db), repository.MaxScanIDSource{}, logger)

	ctx := context.Background()
	demo := []*models.Order{
		{
			CustomerName: "Asha",
			Phone:        "9988777777",
			Email:        "asha@example.com",
			Amount:       48,
			Details: models.OrderDetails{
				Line: models.LinePrint,
				Print: &models.PrintDetails{
					Pages:      12,
					ColorMode:  models.ColorMixed,
					PaperType:  models.PaperStandard,
					ColorPages: 3,
					Sides:      models.SingleSided,
				},
			},
		},
		{
			CustomerName: "Binu",
			Phone:        "8877665544",
			Amount:       1400,
			Details: models.OrderDetails{
				Line: models.LineCake,
				Cake: &models.CakeDetails{
					Flavor:   "Red Velvet",
					WeightKg: 2,
					Shape:    "Heart",
					Toppings: []string{"Macarons", "Gold Leaf"},
					Message:  "Happy Birthday",
				},
			},
		},
	}

	for _, order := range demo {
		id, err := repo.Create(ctx, order)
		if err != nil {
			log.Fatal("Failed to seed demo order:", err)
		}
		fmt.Printf("Seeded order #%d for %s\n", id, order.CustomerName)
	}

	fmt.Println("Database initialized successfully!")
}
