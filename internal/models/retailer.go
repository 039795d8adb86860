package models

import "time"

// Retailer is the tenant. Every other row in the system hangs off a retailer
// via retailer_id; nothing is shared between retailers.
type Retailer struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	Phone           string `gorm:"size:20;uniqueIndex;not null"`
	LoginEmail      string `gorm:"size:100;uniqueIndex;not null"` // <phone>@flowerretail.app
	PasswordHash    string `gorm:"size:255;not null"`
	Name            string `gorm:"size:100;not null"`
	ShopName        string `gorm:"size:100;not null"`
	Location        string `gorm:"size:255;not null"`
	WhatsappEnabled bool   `gorm:"not null;default:false"`
	SMSEnabled      bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
