package pricing

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"
	"flower-retail-backend/internal/notification"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpdatePriceRequest struct {
	FlowerTypeID   string          `json:"flower_type_id"`
	PriceDate      string          `json:"price_date"` // "2006-01-02", defaults to today
	MorningPrice   decimal.Decimal `json:"morning_price"`
	AfternoonPrice decimal.Decimal `json:"afternoon_price"`
	EveningPrice   decimal.Decimal `json:"evening_price"`
}

type PriceResponse struct {
	ID             string          `json:"id"`
	FlowerTypeID   string          `json:"flower_type_id"`
	FlowerName     string          `json:"flower_name"`
	PriceDate      string          `json:"price_date"`
	MorningPrice   decimal.Decimal `json:"morning_price"`
	AfternoonPrice decimal.Decimal `json:"afternoon_price"`
	EveningPrice   decimal.Decimal `json:"evening_price"`
}

// cachedPrice is the redis payload for one (flower, date) price row.
type cachedPrice struct {
	MorningPrice   decimal.Decimal `json:"morning_price"`
	AfternoonPrice decimal.Decimal `json:"afternoon_price"`
	EveningPrice   decimal.Decimal `json:"evening_price"`
}

func cacheKey(retailerID, flowerTypeID string, date time.Time) string {
	return fmt.Sprintf("price:%s:%s:%s", retailerID, flowerTypeID, date.Format("2006-01-02"))
}

func parsePriceDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

// POST /api/prices
//
// Upsert keyed by (flower, date): update the existing row when one exists,
// insert otherwise. The lookup-then-branch keeps the one-row-per-day
// invariant. A system notification records the change.
func UpdatePriceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var body UpdatePriceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.FlowerTypeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "flower_type_id is required")
		}
		if body.MorningPrice.IsNegative() || body.AfternoonPrice.IsNegative() || body.EveningPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Prices cannot be negative")
		}

		priceDate, err := parsePriceDate(body.PriceDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "price_date must be 'YYYY-MM-DD'")
		}

		var flower models.FlowerType
		if err := database.DB.First(&flower, "id = ? AND retailer_id = ?", body.FlowerTypeID, retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Flower type not found")
		}

		var price models.FlowerPrice
		err = database.DB.First(&price,
			"retailer_id = ? AND flower_type_id = ? AND price_date = ?",
			retailerID, flower.ID, priceDate).Error
		created := false
		switch {
		case err == nil:
			price.MorningPrice = body.MorningPrice
			price.AfternoonPrice = body.AfternoonPrice
			price.EveningPrice = body.EveningPrice
			if err := database.DB.Save(&price).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not update price")
			}
		case err == gorm.ErrRecordNotFound:
			price = models.FlowerPrice{
				ID:             uuid.NewString(),
				RetailerID:     retailerID,
				FlowerTypeID:   flower.ID,
				PriceDate:      priceDate,
				MorningPrice:   body.MorningPrice,
				AfternoonPrice: body.AfternoonPrice,
				EveningPrice:   body.EveningPrice,
			}
			if err := database.DB.Create(&price).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not save price")
			}
			created = true
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Could not look up price")
		}

		if database.Redis != nil {
			if err := database.Redis.Del(c.Context(), cacheKey(retailerID, flower.ID, priceDate)).Err(); err != nil {
				log.Printf("price cache invalidation failed: %v", err)
			}
		}

		if err := notification.Notify(notification.NotifyOptions{
			RetailerID:    retailerID,
			RecipientType: models.RecipientSystem,
			Title:         "Prices Updated",
			Message: fmt.Sprintf("%s prices for %s: morning ₹%s, afternoon ₹%s, evening ₹%s",
				flower.Name, priceDate.Format("2006-01-02"),
				body.MorningPrice.String(), body.AfternoonPrice.String(), body.EveningPrice.String()),
		}); err != nil {
			log.Printf("price notification failed: %v", err)
		}

		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(PriceResponse{
			ID:             price.ID,
			FlowerTypeID:   flower.ID,
			FlowerName:     flower.Name,
			PriceDate:      price.PriceDate.Format("2006-01-02"),
			MorningPrice:   price.MorningPrice,
			AfternoonPrice: price.AfternoonPrice,
			EveningPrice:   price.EveningPrice,
		})
	}
}

// GET /api/prices?date=
func ListPricesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		date, err := parsePriceDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		var rows []models.FlowerPrice
		if err := database.DB.Preload("FlowerType").
			Where("retailer_id = ? AND price_date = ?", retailerID, date).
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list prices")
		}

		resp := make([]PriceResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, PriceResponse{
				ID:             r.ID,
				FlowerTypeID:   r.FlowerTypeID,
				FlowerName:     r.FlowerType.Name,
				PriceDate:      r.PriceDate.Format("2006-01-02"),
				MorningPrice:   r.MorningPrice,
				AfternoonPrice: r.AfternoonPrice,
				EveningPrice:   r.EveningPrice,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/prices/suggested?flower_type_id=&date=&time_slot=
//
// The entry screen polls this while the user picks flower and slot, so the
// day's row is cached in Redis until end of day when one is configured.
func SuggestedPriceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		flowerTypeID := c.Query("flower_type_id")
		if flowerTypeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "flower_type_id is required")
		}

		slot := models.TimeSlot(c.Query("time_slot", string(models.TimeSlotMorning)))
		switch slot {
		case models.TimeSlotMorning, models.TimeSlotAfternoon, models.TimeSlotEvening:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "time_slot must be morning, afternoon or evening")
		}

		date, err := parsePriceDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		key := cacheKey(retailerID, flowerTypeID, date)

		if database.Redis != nil {
			val, err := database.Redis.Get(c.Context(), key).Result()
			if err == nil {
				var cached cachedPrice
				if err := json.Unmarshal([]byte(val), &cached); err == nil {
					row := models.FlowerPrice{
						MorningPrice:   cached.MorningPrice,
						AfternoonPrice: cached.AfternoonPrice,
						EveningPrice:   cached.EveningPrice,
					}
					return c.JSON(fiber.Map{
						"flower_type_id": flowerTypeID,
						"price_date":     date.Format("2006-01-02"),
						"time_slot":      slot,
						"price":          row.SlotPrice(slot),
					})
				}
			} else if err != redis.Nil {
				log.Printf("price cache read failed: %v", err)
			}
		}

		var price models.FlowerPrice
		if err := database.DB.First(&price,
			"retailer_id = ? AND flower_type_id = ? AND price_date = ?",
			retailerID, flowerTypeID, date).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "No price set for this date")
		}

		if database.Redis != nil {
			payload, err := json.Marshal(cachedPrice{
				MorningPrice:   price.MorningPrice,
				AfternoonPrice: price.AfternoonPrice,
				EveningPrice:   price.EveningPrice,
			})
			if err == nil {
				// keep until end of day; prices for past days rarely get re-read
				endOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
				ttl := time.Until(endOfDay)
				if ttl < time.Minute {
					ttl = time.Minute
				}
				if err := database.Redis.Set(c.Context(), key, payload, ttl).Err(); err != nil {
					log.Printf("price cache write failed: %v", err)
				}
			}
		}

		return c.JSON(fiber.Map{
			"flower_type_id": flowerTypeID,
			"price_date":     date.Format("2006-01-02"),
			"time_slot":      slot,
			"price":          price.SlotPrice(slot),
		})
	}
}
