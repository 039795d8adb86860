package database

import (
	"log"

	"flower-retail-backend/internal/config"
	"flower-retail-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration complete.")
}

// Migrate runs the schema migration for all models. Split out of Init so
// tests can run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Retailer{},
		&models.Farmer{},
		&models.Customer{},
		&models.FlowerType{},
		&models.DailySupply{},
		&models.FlowerPrice{},
		&models.CustomerPurchase{},
		&models.Notification{},
		&models.MessageLog{},
	)
}
