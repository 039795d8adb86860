package models

import "time"

type RecipientType string

const (
	RecipientFarmer   RecipientType = "farmer"
	RecipientCustomer RecipientType = "customer"
	RecipientSystem   RecipientType = "system"
)

// Notification rows are written as side effects of supply, purchase and
// price-update writes.
type Notification struct {
	ID            string        `gorm:"type:uuid;primaryKey"`
	RetailerID    string        `gorm:"type:uuid;index;not null"`
	RecipientType RecipientType `gorm:"size:20;not null"`
	RecipientID   *string       `gorm:"type:uuid"` // nil for system notifications
	Title         string        `gorm:"size:100;not null"`
	Message       string        `gorm:"size:500;not null"`
	IsRead        bool          `gorm:"not null;default:false"`
	CreatedAt     time.Time
}
