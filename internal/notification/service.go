package notification

import (
	"fmt"
	"time"

	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/google/uuid"
)

type NotifyOptions struct {
	RetailerID    string
	RecipientType models.RecipientType
	RecipientID   string // empty for system notifications
	Title         string
	Message       string
	// Phone enables the message-log fanout for farmer/customer recipients.
	// Which channels get a row depends on the retailer's flags.
	Phone string
}

// Notify inserts a notification row and, for farmer/customer recipients with
// a phone number, message-log rows for each channel the retailer has enabled.
// Callers treat failures as non-fatal: the parent write has already happened.
func Notify(opts NotifyOptions) error {
	n := models.Notification{
		ID:            uuid.NewString(),
		RetailerID:    opts.RetailerID,
		RecipientType: opts.RecipientType,
		Title:         opts.Title,
		Message:       opts.Message,
		IsRead:        false,
	}
	if opts.RecipientID != "" {
		recipientID := opts.RecipientID
		n.RecipientID = &recipientID
	}

	if err := database.DB.Create(&n).Error; err != nil {
		return fmt.Errorf("notification write failed: %w", err)
	}

	if opts.Phone == "" || opts.RecipientType == models.RecipientSystem {
		return nil
	}

	var retailer models.Retailer
	if err := database.DB.First(&retailer, "id = ?", opts.RetailerID).Error; err != nil {
		return fmt.Errorf("retailer lookup failed: %w", err)
	}

	var channels []models.MessageType
	if retailer.SMSEnabled {
		channels = append(channels, models.MessageTypeSMS)
	}
	if retailer.WhatsappEnabled {
		channels = append(channels, models.MessageTypeWhatsapp)
	}

	for _, channel := range channels {
		msgLog := models.MessageLog{
			ID:             uuid.NewString(),
			RetailerID:     opts.RetailerID,
			RecipientType:  opts.RecipientType,
			RecipientID:    opts.RecipientID,
			PhoneNumber:    opts.Phone,
			MessageType:    channel,
			MessageContent: opts.Message,
			DeliveryStatus: models.DeliveryStatusSent,
			SentAt:         time.Now(),
		}
		if err := database.DB.Create(&msgLog).Error; err != nil {
			return fmt.Errorf("message log write failed: %w", err)
		}
	}

	return nil
}
