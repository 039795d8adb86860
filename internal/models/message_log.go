package models

import "time"

type MessageType string

const (
	MessageTypeSMS      MessageType = "sms"
	MessageTypeWhatsapp MessageType = "whatsapp"
)

type DeliveryStatus string

const (
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// MessageLog records an outbound message. Actual SMS/WhatsApp delivery is not
// integrated; rows are written with status "sent" and a delivery provider
// would update them.
type MessageLog struct {
	ID             string         `gorm:"type:uuid;primaryKey"`
	RetailerID     string         `gorm:"type:uuid;index;not null"`
	RecipientType  RecipientType  `gorm:"size:20;not null"`
	RecipientID    string         `gorm:"type:uuid;not null"`
	PhoneNumber    string         `gorm:"size:20;not null"`
	MessageType    MessageType    `gorm:"size:20;not null"`
	MessageContent string         `gorm:"size:500;not null"`
	DeliveryStatus DeliveryStatus `gorm:"size:20;not null;default:sent"`
	SentAt         time.Time      `gorm:"index;not null"`
}
