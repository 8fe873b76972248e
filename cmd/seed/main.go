// Seeds demo catalog data into the configured database. Intended for
// local development:
//
//	go run ./cmd/seed
package main

import (
	"log"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Transaction{},
		&model.OrderSequence{},
	)

	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)

	categories := map[string]*model.Category{}
	for _, name := range []string{"Electronics", "Office Supplies", "Raw Materials", "Packaging"} {
		existing, err := categoryRepo.FindByName(name)
		if err == nil {
			categories[name] = existing
			continue
		}
		category := &model.Category{Name: name}
		if err := categoryRepo.Create(category); err != nil {
			log.Fatalf("Failed to seed category %s: %v", name, err)
		}
		categories[name] = category
	}

	demoProducts := []model.Product{
		{SKU: "ELC-001", Name: "USB-C Dock", CategoryID: categories["Electronics"].ID, Quantity: 40, Unit: "pcs", MinStock: 10},
		{SKU: "ELC-002", Name: "27in Monitor", CategoryID: categories["Electronics"].ID, Quantity: 15, Unit: "pcs", MinStock: 5},
		{SKU: "OFF-001", Name: "A4 Paper Ream", CategoryID: categories["Office Supplies"].ID, Quantity: 200, Unit: "ream", MinStock: 50},
		{SKU: "PCK-001", Name: "Shipping Box M", CategoryID: categories["Packaging"].ID, Quantity: 500, Unit: "pcs", MinStock: 100},
	}

	for i := range demoProducts {
		if existing, err := productRepo.FindBySKU(demoProducts[i].SKU); err == nil && existing != nil {
			continue
		}
		if err := productRepo.Create(&demoProducts[i]); err != nil {
			log.Fatalf("Failed to seed product %s: %v", demoProducts[i].SKU, err)
		}
		log.Printf("Seeded product %s (%s)", demoProducts[i].Name, demoProducts[i].SKU)
	}

	log.Println("Seeding complete")
}
