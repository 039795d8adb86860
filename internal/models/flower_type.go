package models

import "time"

// DefaultFlowerTypes are seeded for every new retailer at registration.
var DefaultFlowerTypes = []string{"Jasmine", "Rose", "Marigold", "Others"}

type FlowerType struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	RetailerID string `gorm:"type:uuid;index;not null"`
	Name       string `gorm:"size:50;not null"`
	IsActive   bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
