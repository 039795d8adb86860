package purchase

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
	"gorm.io/gorm"
)

type CreatePurchaseRequest struct {
	CustomerID       string          `json:"customer_id"`
	FlowerTypeID     string          `json:"flower_type_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	PricePerKg       decimal.Decimal `json:"price_per_kg"`
	PurchaseDate     string          `json:"purchase_date"` // "2006-01-02", defaults to today
	TimeSlot         string          `json:"time_slot"`
	SendNotification bool            `json:"send_notification"`
}

type PurchaseResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	FlowerTypeID  string          `json:"flower_type_id"`
	FlowerName    string          `json:"flower_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerKg    decimal.Decimal `json:"price_per_kg"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PurchaseDate  string          `json:"purchase_date"`
	TimeSlot      string          `json:"time_slot"`
	PaymentStatus string          `json:"payment_status"`
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

// POST /api/purchases
//
// total_amount = quantity x price_per_kg, computed here and never recomputed.
// The purchase insert and the dues increment run in one transaction; the
// increment happens in the database so concurrent purchases for the same
// customer cannot lose an update.
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CustomerID == "" || body.FlowerTypeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "customer_id and flower_type_id are required")
		}
		if !body.Quantity.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be a positive number")
		}
		if body.PricePerKg.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "price_per_kg cannot be negative")
		}

		purchaseDate, err := parseEntryDate(body.PurchaseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "purchase_date must be 'YYYY-MM-DD'")
		}

		timeSlot, err := parseTimeSlot(body.TimeSlot)
		if err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, "id = ? AND retailer_id = ?", body.CustomerID, retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Customer not found")
		}

		var flower models.FlowerType
		if err := database.DB.First(&flower, "id = ? AND retailer_id = ?", body.FlowerTypeID, retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Flower type not found")
		}
		if !flower.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Flower type is inactive")
		}

		totalAmount := body.Quantity.Mul(body.PricePerKg).Round(2)

		p := models.CustomerPurchase{
			ID:            uuid.NewString(),
			RetailerID:    retailerID,
			CustomerID:    cust.ID,
			FlowerTypeID:  flower.ID,
			Quantity:      body.Quantity,
			PricePerKg:    body.PricePerKg,
			TotalAmount:   totalAmount,
			PurchaseDate:  purchaseDate,
			TimeSlot:      timeSlot,
			PaymentStatus: models.PaymentStatusPending,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			return tx.Model(&models.Customer{}).
				Where("id = ?", cust.ID).
				Updates(map[string]interface{}{
					"pending_dues":       gorm.Expr("pending_dues + ?", totalAmount),
					"last_purchase_date": purchaseDate,
				}).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save purchase")
		}

		if body.SendNotification {
			if err := notification.Notify(notification.NotifyOptions{
				RetailerID:    retailerID,
				RecipientType: models.RecipientCustomer,
				RecipientID:   cust.ID,
				Title:         "Purchase Recorded",
				Message: fmt.Sprintf("Your order: %skg %s at ₹%s/kg (Total: ₹%s)",
					body.Quantity.String(), flower.Name, body.PricePerKg.String(), totalAmount.StringFixed(2)),
				Phone: cust.Phone,
			}); err != nil {
				log.Printf("purchase notification failed: %v", err)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(PurchaseResponse{
			ID:            p.ID,
			CustomerID:    cust.ID,
			CustomerName:  cust.Name,
			FlowerTypeID:  flower.ID,
			FlowerName:    flower.Name,
			Quantity:      p.Quantity,
			PricePerKg:    p.PricePerKg,
			TotalAmount:   p.TotalAmount,
			PurchaseDate:  p.PurchaseDate.Format("2006-01-02"),
			TimeSlot:      string(p.TimeSlot),
			PaymentStatus: string(p.PaymentStatus),
		})
	}
}

// GET /api/purchases?date=&customer_id=
func ListPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		date, err := parseEntryDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		dbq := database.DB.Preload("Customer").Preload("FlowerType").
			Where("retailer_id = ? AND purchase_date = ?", retailerID, date)

		if customerID := c.Query("customer_id"); customerID != "" {
			dbq = dbq.Where("customer_id = ?", customerID)
		}

		var rows []models.CustomerPurchase
		if err := dbq.Order("created_at asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list purchases")
		}

		resp := make([]PurchaseResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, PurchaseResponse{
				ID:            r.ID,
				CustomerID:    r.CustomerID,
				CustomerName:  r.Customer.Name,
				FlowerTypeID:  r.FlowerTypeID,
				FlowerName:    r.FlowerType.Name,
				Quantity:      r.Quantity,
				PricePerKg:    r.PricePerKg,
				TotalAmount:   r.TotalAmount,
				PurchaseDate:  r.PurchaseDate.Format("2006-01-02"),
				TimeSlot:      string(r.TimeSlot),
				PaymentStatus: string(r.PaymentStatus),
			})
		}

		return c.JSON(resp)
	}
}
