package flower

import (
	"strings"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateFlowerTypeRequest struct {
	Name string `json:"name"`
}

type UpdateFlowerTypeRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type FlowerTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func toResponse(f *models.FlowerType) FlowerTypeResponse {
	return FlowerTypeResponse{ID: f.ID, Name: f.Name, IsActive: f.IsActive}
}

// GET /api/flower-types?active=true
func ListFlowerTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("retailer_id = ?", retailerID).Order("name asc")
		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var flowers []models.FlowerType
		if err := dbq.Find(&flowers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list flower types")
		}

		resp := make([]FlowerTypeResponse, 0, len(flowers))
		for i := range flowers {
			resp = append(resp, toResponse(&flowers[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/flower-types
func CreateFlowerTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var body CreateFlowerTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		var count int64
		database.DB.Model(&models.FlowerType{}).
			Where("retailer_id = ? AND LOWER(name) = LOWER(?)", retailerID, body.Name).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Flower type already exists")
		}

		f := models.FlowerType{
			ID:         uuid.NewString(),
			RetailerID: retailerID,
			Name:       body.Name,
			IsActive:   true,
		}
		if err := database.DB.Create(&f).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create flower type")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&f))
	}
}

// PUT /api/flower-types/:id
//
// Renames or toggles is_active. There is no delete: supplies, prices and
// purchases reference flower types.
func UpdateFlowerTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var f models.FlowerType
		if err := database.DB.First(&f, "id = ? AND retailer_id = ?", c.Params("id"), retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Flower type not found")
		}

		var body UpdateFlowerTypeRequest
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
		if body.IsActive != nil {
			f.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&f).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update flower type")
		}

		return c.JSON(toResponse(&f))
	}
}
