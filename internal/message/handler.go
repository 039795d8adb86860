package message

import (
	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MessageLogResponse struct {
	ID             string `json:"id"`
	RecipientType  string `json:"recipient_type"`
	RecipientID    string `json:"recipient_id"`
	PhoneNumber    string `json:"phone_number"`
	MessageType    string `json:"message_type"`
	MessageContent string `json:"message_content"`
	DeliveryStatus string `json:"delivery_status"`
	SentAt         string `json:"sent_at"`
}

type MessageStatsResponse struct {
	Total     int64 `json:"total"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
}

// GET /api/messages?recipient_type=&message_type=
func ListMessagesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("retailer_id = ?", retailerID).
			Order("sent_at desc")

		switch rt := c.Query("recipient_type"); rt {
		case "", "all":
		case string(models.RecipientFarmer), string(models.RecipientCustomer), string(models.RecipientSystem):
			dbq = dbq.Where("recipient_type = ?", rt)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "recipient_type must be farmer, customer or system")
		}

		switch mt := c.Query("message_type"); mt {
		case "", "all":
		case string(models.MessageTypeSMS), string(models.MessageTypeWhatsapp):
			dbq = dbq.Where("message_type = ?", mt)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "message_type must be sms or whatsapp")
		}

		var rows []models.MessageLog
		if err := dbq.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list messages")
		}

		resp := make([]MessageLogResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, MessageLogResponse{
				ID:             r.ID,
				RecipientType:  string(r.RecipientType),
				RecipientID:    r.RecipientID,
				PhoneNumber:    r.PhoneNumber,
				MessageType:    string(r.MessageType),
				MessageContent: r.MessageContent,
				DeliveryStatus: string(r.DeliveryStatus),
				SentAt:         r.SentAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/messages/stats
func MessageStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var stats MessageStatsResponse

		if err := database.DB.Model(&models.MessageLog{}).
			Where("retailer_id = ?", retailerID).
			Count(&stats.Total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute stats")
		}
		if err := database.DB.Model(&models.MessageLog{}).
			Where("retailer_id = ? AND delivery_status = ?", retailerID, models.DeliveryStatusDelivered).
			Count(&stats.Delivered).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute stats")
		}
		if err := database.DB.Model(&models.MessageLog{}).
			Where("retailer_id = ? AND delivery_status = ?", retailerID, models.DeliveryStatusFailed).
			Count(&stats.Failed).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute stats")
		}

		return c.JSON(stats)
	}
}
