package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeDaily    PaymentType = "daily"
	PaymentTypeOnDemand PaymentType = "on_demand"
)

type Customer struct {
	ID               string          `gorm:"type:uuid;primaryKey"`
	RetailerID       string          `gorm:"type:uuid;index;not null"`
	Name             string          `gorm:"size:100;not null"`
	Phone            string          `gorm:"size:20;not null"`
	CustomerCode     string          `gorm:"size:20"`
	PaymentType      PaymentType     `gorm:"size:20;not null;default:daily"`
	PendingDues      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"` // only ever incremented, by purchases
	LastPurchaseDate *time.Time      `gorm:"type:date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
