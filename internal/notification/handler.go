package notification

import (
	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type NotificationResponse struct {
	ID            string  `json:"id"`
	RecipientType string  `json:"recipient_type"`
	RecipientID   *string `json:"recipient_id"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	IsRead        bool    `json:"is_read"`
	CreatedAt     string  `json:"created_at"`
}

func toResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		RecipientType: string(n.RecipientType),
		RecipientID:   n.RecipientID,
		Title:         n.Title,
		Message:       n.Message,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GET /api/notifications?filter=farmer|customer|system
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("retailer_id = ?", retailerID).
			Order("created_at desc")

		switch filter := c.Query("filter"); filter {
		case "", "all":
		case string(models.RecipientFarmer), string(models.RecipientCustomer), string(models.RecipientSystem):
			dbq = dbq.Where("recipient_type = ?", filter)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "filter must be farmer, customer or system")
		}

		var rows []models.Notification
		if err := dbq.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list notifications")
		}

		resp := make([]NotificationResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/notifications/unread-count
func UnreadCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var count int64
		if err := database.DB.Model(&models.Notification{}).
			Where("retailer_id = ? AND is_read = ?", retailerID, false).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count notifications")
		}

		return c.JSON(fiber.Map{"unread": count})
	}
}

// POST /api/notifications/:id/read
func MarkReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var n models.Notification
		if err := database.DB.First(&n, "id = ? AND retailer_id = ?", id, retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}

		n.IsRead = true
		if err := database.DB.Save(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update notification")
		}

		return c.JSON(toResponse(&n))
	}
}

// POST /api/notifications/read-all
func MarkAllReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		if err := database.DB.Model(&models.Notification{}).
			Where("retailer_id = ? AND is_read = ?", retailerID, false).
			Update("is_read", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update notifications")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
