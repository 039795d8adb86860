package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Farmer struct {
	ID                string          `gorm:"type:uuid;primaryKey"`
	RetailerID        string          `gorm:"type:uuid;index;not null"`
	Name              string          `gorm:"size:100;not null"`
	Phone             string          `gorm:"size:20;not null"`
	FarmerCode        string          `gorm:"size:20"`
	PhotoURL          string          `gorm:"size:255"`
	OutstandingAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"` // owed to the farmer, settled out of band
	LastPaymentDate   *time.Time      `gorm:"type:date"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
