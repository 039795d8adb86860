package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySupply is one supply event from a farmer. There is deliberately no
// uniqueness across (farmer, flower, date): a farmer may deliver several times
// a day and every delivery is its own row.
type DailySupply struct {
	ID               string          `gorm:"type:uuid;primaryKey"`
	RetailerID       string          `gorm:"type:uuid;index;not null"`
	FarmerID         string          `gorm:"type:uuid;index;not null"`
	Farmer           Farmer          `gorm:"foreignKey:FarmerID"`
	FlowerTypeID     string          `gorm:"type:uuid;index;not null"`
	FlowerType       FlowerType      `gorm:"foreignKey:FlowerTypeID"`
	Quantity         decimal.Decimal `gorm:"type:numeric(10,2);not null"` // kg
	SupplyDate       time.Time       `gorm:"type:date;index;not null"`
	Notes            string          `gorm:"size:255"`
	NotificationSent bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time
}
