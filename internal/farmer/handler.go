package farmer

import (
	"strings"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateFarmerRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	FarmerCode string `json:"farmer_code"`
	PhotoURL   string `json:"photo_url"`
}

type UpdateFarmerRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	FarmerCode *string `json:"farmer_code"`
	PhotoURL   *string `json:"photo_url"`
}

type FarmerResponse struct {
	ID                string          `json:"id"`
	RetailerID        string          `json:"retailer_id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	FarmerCode        string          `json:"farmer_code"`
	PhotoURL          string          `json:"photo_url"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	LastPaymentDate   *string         `json:"last_payment_date"`
}

func toResponse(f *models.Farmer) FarmerResponse {
	resp := FarmerResponse{
		ID:                f.ID,
		RetailerID:        f.RetailerID,
		Name:              f.Name,
		Phone:             f.Phone,
		FarmerCode:        f.FarmerCode,
		PhotoURL:          f.PhotoURL,
		OutstandingAmount: f.OutstandingAmount,
	}
	if f.LastPaymentDate != nil {
		d := f.LastPaymentDate.Format("2006-01-02")
		resp.LastPaymentDate = &d
	}
	return resp
}

// matchesSearch is the case-insensitive substring filter applied after the
// scoped read, mirroring how the client filtered its local copy.
func matchesSearch(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// POST /api/farmers
func CreateFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var body CreateFarmerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		if body.Name == "" || body.Phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and phone are required")
		}

		f := models.Farmer{
			ID:                uuid.NewString(),
			RetailerID:        retailerID,
			Name:              body.Name,
			Phone:             body.Phone,
			FarmerCode:        strings.TrimSpace(body.FarmerCode),
			PhotoURL:          strings.TrimSpace(body.PhotoURL),
			OutstandingAmount: decimal.Zero,
		}

		if err := database.DB.Create(&f).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create farmer")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&f))
	}
}

// GET /api/farmers?search=
func ListFarmersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var farmers []models.Farmer
		if err := database.DB.Where("retailer_id = ?", retailerID).
			Order("name asc").
			Find(&farmers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list farmers")
		}

		search := c.Query("search")
		resp := make([]FarmerResponse, 0, len(farmers))
		for i := range farmers {
			if search != "" && !matchesSearch(farmers[i].Name, search) {
				continue
			}
			resp = append(resp, toResponse(&farmers[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/farmers/:id
func GetFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var f models.Farmer
		if err := database.DB.First(&f, "id = ? AND retailer_id = ?", c.Params("id"), retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Farmer not found")
		}

		return c.JSON(toResponse(&f))
	}
}

// PUT /api/farmers/:id
func UpdateFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var f models.Farmer
		if err := database.DB.First(&f, "id = ? AND retailer_id = ?", c.Params("id"), retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Farmer not found")
		}

		var body UpdateFarmerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			f.Name = name
		}
		if body.Phone != nil {
			phone := strings.TrimSpace(*body.Phone)
			if phone == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Phone cannot be empty")
			}
			f.Phone = phone
		}
		if body.FarmerCode != nil {
			f.FarmerCode = strings.TrimSpace(*body.FarmerCode)
		}
		if body.PhotoURL != nil {
			f.PhotoURL = strings.TrimSpace(*body.PhotoURL)
		}

		if err := database.DB.Save(&f).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update farmer")
		}

		return c.JSON(toResponse(&f))
	}
}

// DELETE /api/farmers/:id
func DeleteFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var f models.Farmer
		if err := database.DB.First(&f, "id = ? AND retailer_id = ?", c.Params("id"), retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Farmer not found")
		}

		var supplyCount int64
		database.DB.Model(&models.DailySupply{}).Where("farmer_id = ?", f.ID).Count(&supplyCount)
		if supplyCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Farmer has supply records and cannot be deleted")
		}

		if err := database.DB.Delete(&f).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete farmer")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
