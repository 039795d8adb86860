package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
)

// CustomerPurchase is one sale to a customer. TotalAmount is computed once at
// write time (quantity x price_per_kg) and never recomputed.
type CustomerPurchase struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	RetailerID    string          `gorm:"type:uuid;index;not null"`
	CustomerID    string          `gorm:"type:uuid;index;not null"`
	Customer      Customer        `gorm:"foreignKey:CustomerID"`
	FlowerTypeID  string          `gorm:"type:uuid;index;not null"`
	FlowerType    FlowerType      `gorm:"foreignKey:FlowerTypeID"`
	Quantity      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PricePerKg    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PurchaseDate  time.Time       `gorm:"type:date;index;not null"`
	TimeSlot      TimeSlot        `gorm:"size:20;not null"`
	PaymentStatus PaymentStatus   `gorm:"size:20;not null;default:pending"`
	CreatedAt     time.Time
}
