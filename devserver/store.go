package devserver

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/claudiojas/rockbandpay-table-client/models"
)

// OpenDB opens the devserver's sqlite store and migrates the schema.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Session{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Seed loads a small menu when the catalog is empty, for local development.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	drinks := models.Category{ID: uuid.NewString(), Name: "Bebidas", CreatedAt: now}
	snacks := models.Category{ID: uuid.NewString(), Name: "Porções", CreatedAt: now}
	if err := db.Create(&drinks).Error; err != nil {
		return err
	}
	if err := db.Create(&snacks).Error; err != nil {
		return err
	}

	products := []models.Product{
		{ID: uuid.NewString(), CategoryID: drinks.ID, Name: "Chopp Pilsen 500ml", Price: 12.00, Stock: 120, CreatedAt: now},
		{ID: uuid.NewString(), CategoryID: drinks.ID, Name: "Refrigerante Lata", Price: 7.50, Stock: 80, CreatedAt: now},
		{ID: uuid.NewString(), CategoryID: drinks.ID, Name: "Água com Gás", Price: 5.00, Stock: 60, CreatedAt: now},
		{ID: uuid.NewString(), CategoryID: snacks.ID, Name: "Batata Frita", Price: 28.00, Stock: 40, Description: "Porção grande", CreatedAt: now},
		{ID: uuid.NewString(), CategoryID: snacks.ID, Name: "Isca de Frango", Price: 34.00, Stock: 30, CreatedAt: now},
	}
	return db.Create(&products).Error
}
