package supply

import (
	"fmt"
	"log"
	"time"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"
	"flower-retail-backend/internal/notification"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateSupplyRequest struct {
	FarmerID         string          `json:"farmer_id"`
	FlowerTypeID     string          `json:"flower_type_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	SupplyDate       string          `json:"supply_date"` // "2006-01-02", defaults to today
	TimeSlot         string          `json:"time_slot"`   // only used in the notification text
	Notes            string          `json:"notes"`
	SendNotification bool            `json:"send_notification"`
}

type SupplyResponse struct {
	ID               string          `json:"id"`
	FarmerID         string          `json:"farmer_id"`
	FarmerName       string          `json:"farmer_name"`
	FlowerTypeID     string          `json:"flower_type_id"`
	FlowerName       string          `json:"flower_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	SupplyDate       string          `json:"supply_date"`
	Notes            string          `json:"notes"`
	NotificationSent bool            `json:"notification_sent"`
}

func parseEntryDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

func parseTimeSlot(s string) (models.TimeSlot, error) {
	if s == "" {
		return models.TimeSlotMorning, nil
	}
	switch models.TimeSlot(s) {
	case models.TimeSlotMorning, models.TimeSlotAfternoon, models.TimeSlotEvening:
		return models.TimeSlot(s), nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "time_slot must be morning, afternoon or evening")
}

// POST /api/supplies
//
// Records one supply event. Supplies are append-only: the same farmer may
// deliver the same flower several times a day, each delivery is its own row.
func CreateSupplyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var body CreateSupplyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.FarmerID == "" || body.FlowerTypeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "farmer_id and flower_type_id are required")
		}
		if !body.Quantity.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be a positive number")
		}

		supplyDate, err := parseEntryDate(body.SupplyDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "supply_date must be 'YYYY-MM-DD'")
		}

		timeSlot, err := parseTimeSlot(body.TimeSlot)
		if err != nil {
			return err
		}

		var farmer models.Farmer
		if err := database.DB.First(&farmer, "id = ? AND retailer_id = ?", body.FarmerID, retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Farmer not found")
		}

		var flower models.FlowerType
		if err := database.DB.First(&flower, "id = ? AND retailer_id = ?", body.FlowerTypeID, retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Flower type not found")
		}
		if !flower.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Flower type is inactive")
		}

		s := models.DailySupply{
			ID:               uuid.NewString(),
			RetailerID:       retailerID,
			FarmerID:         farmer.ID,
			FlowerTypeID:     flower.ID,
			Quantity:         body.Quantity,
			SupplyDate:       supplyDate,
			Notes:            body.Notes,
			NotificationSent: body.SendNotification,
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save supply entry")
		}

		if body.SendNotification {
			if err := notification.Notify(notification.NotifyOptions{
				RetailerID:    retailerID,
				RecipientType: models.RecipientFarmer,
				RecipientID:   farmer.ID,
				Title:         "Supply Recorded",
				Message:       fmt.Sprintf("Your supply of %skg %s has been recorded for %s.", body.Quantity.String(), flower.Name, timeSlot),
				Phone:         farmer.Phone,
			}); err != nil {
				log.Printf("supply notification failed: %v", err)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(SupplyResponse{
			ID:               s.ID,
			FarmerID:         farmer.ID,
			FarmerName:       farmer.Name,
			FlowerTypeID:     flower.ID,
			FlowerName:       flower.Name,
			Quantity:         s.Quantity,
			SupplyDate:       s.SupplyDate.Format("2006-01-02"),
			Notes:            s.Notes,
			NotificationSent: s.NotificationSent,
		})
	}
}

// GET /api/supplies?date=&farmer_id=
func ListSuppliesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		date, err := parseEntryDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		dbq := database.DB.Preload("Farmer").Preload("FlowerType").
			Where("retailer_id = ? AND supply_date = ?", retailerID, date)

		if farmerID := c.Query("farmer_id"); farmerID != "" {
			dbq = dbq.Where("farmer_id = ?", farmerID)
		}

		var rows []models.DailySupply
		if err := dbq.Order("created_at asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list supplies")
		}

		resp := make([]SupplyResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, SupplyResponse{
				ID:               r.ID,
				FarmerID:         r.FarmerID,
				FarmerName:       r.Farmer.Name,
				FlowerTypeID:     r.FlowerTypeID,
				FlowerName:       r.FlowerType.Name,
				Quantity:         r.Quantity,
				SupplyDate:       r.SupplyDate.Format("2006-01-02"),
				Notes:            r.Notes,
				NotificationSent: r.NotificationSent,
			})
		}

		return c.JSON(resp)
	}
}
