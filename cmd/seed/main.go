package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/config"
	"github.com/zeid-hub/WhimsyB/pkg/database"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

func uintPtr(v uint) *uint { return &v }

// Seeds a small demo catalog. Destructive: wipes reviews, categories, and
// products first.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	if err := db.Where("1 = 1").Delete(&model.Review{}).Error; err != nil {
		log.Fatal("Failed to clear reviews", zap.Error(err))
	}
	if err := db.Where("1 = 1").Delete(&model.ProductCategory{}).Error; err != nil {
		log.Fatal("Failed to clear categories", zap.Error(err))
	}
	if err := db.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
		log.Fatal("Failed to clear products", zap.Error(err))
	}

	products := []model.Product{
		{Name: "Product 1", Price: 100, Description: "Description of product 1", Quantity: 10, ImageURL: "http://example.com/image1.jpg"},
		{Name: "Product 2", Price: 200, Description: "Description of product 2", Quantity: 20, ImageURL: "http://example.com/image2.jpg"},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Fatal("Failed to seed products", zap.Error(err))
	}

	categories := []model.ProductCategory{
		{Name: "Category 1", ProductID: uintPtr(products[0].ID)},
		{Name: "Category 2", ProductID: uintPtr(products[1].ID)},
	}
	if err := db.Create(&categories).Error; err != nil {
		log.Fatal("Failed to seed categories", zap.Error(err))
	}

	now := time.Now().UTC()
	reviews := []model.Review{
		{UserID: 1, ProductID: products[0].ID, Rating: 5, Body: "Great product!", Date: now, Status: "pending"},
		{UserID: 1, ProductID: products[1].ID, Rating: 4, Body: "Good product!", Date: now, Status: "pending"},
	}
	if err := db.Create(&reviews).Error; err != nil {
		log.Fatal("Failed to seed reviews", zap.Error(err))
	}

	log.Info("Catalog seeded successfully",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
		zap.Int("reviews", len(reviews)))
}
