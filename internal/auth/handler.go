package auth

import (
	"strings"

	"flower-retail-backend/internal/config"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginEmailDomain is the synthetic domain that turns a phone number into an
// email-shaped login identity, kept from the original mobile app.
const LoginEmailDomain = "flowerretail.app"

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	ShopName string `json:"shop_name"`
	Location string `json:"location"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	ShopName        *string `json:"shop_name"`
	Location        *string `json:"location"`
	WhatsappEnabled *bool   `json:"whatsapp_enabled"`
	SMSEnabled      *bool   `json:"sms_enabled"`
}

type RetailerResponse struct {
	ID              string `json:"id"`
	Phone           string `json:"phone"`
	Name            string `json:"name"`
	ShopName        string `json:"shop_name"`
	Location        string `json:"location"`
	WhatsappEnabled bool   `json:"whatsapp_enabled"`
	SMSEnabled      bool   `json:"sms_enabled"`
}

func retailerResponse(r *models.Retailer) RetailerResponse {
	return RetailerResponse{
		ID:              r.ID,
		Phone:           r.Phone,
		Name:            r.Name,
		ShopName:        r.ShopName,
		Location:        r.Location,
		WhatsappEnabled: r.WhatsappEnabled,
		SMSEnabled:      r.SMSEnabled,
	}
}

// POST /api/auth/register
//
// Retailer profile and the default flower types are created in one
// transaction, so a failure cannot leave a half-registered identity behind.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		body.ShopName = strings.TrimSpace(body.ShopName)
		body.Location = strings.TrimSpace(body.Location)

		if body.Name == "" || body.Phone == "" || body.Password == "" || body.ShopName == "" || body.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, phone, password, shop name and location are required")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
		}

		var count int64
		database.DB.Model(&models.Retailer{}).
			Where("phone = ?", body.Phone).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Phone number already registered")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		retailer := models.Retailer{
			ID:           uuid.NewString(),
			Phone:        body.Phone,
			LoginEmail:   body.Phone + "@" + LoginEmailDomain,
			PasswordHash: string(hash),
			Name:         body.Name,
			ShopName:     body.ShopName,
			Location:     body.Location,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&retailer).Error; err != nil {
				return err
			}
			for _, name := range models.DefaultFlowerTypes {
				flower := models.FlowerType{
					ID:         uuid.NewString(),
					RetailerID: retailer.ID,
					Name:       name,
					IsActive:   true,
				}
				if err := tx.Create(&flower).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create retailer")
		}

		token, err := GenerateToken(cfg.JWTSecret, &retailer)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token":    token,
			"retailer": retailerResponse(&retailer),
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Phone = strings.TrimSpace(body.Phone)

		var retailer models.Retailer
		if err := database.DB.Where("phone = ?", body.Phone).First(&retailer).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid phone or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(retailer.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid phone or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, &retailer)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"token":    token,
			"retailer": retailerResponse(&retailer),
		})
	}
}

// GET /api/auth/me
//
// Re-fetches the retailer row for the token's identity. Clients call this
// after any write that may change retailer-level flags.
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := RetailerID(c)
		if err != nil {
			return err
		}

		var retailer models.Retailer
		if err := database.DB.First(&retailer, "id = ?", retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Retailer not found")
		}

		return c.JSON(retailerResponse(&retailer))
	}
}

// PUT /api/auth/profile
func UpdateProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := RetailerID(c)
		if err != nil {
			return err
		}

		var retailer models.Retailer
		if err := database.DB.First(&retailer, "id = ?", retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Retailer not found")
		}

		var body UpdateProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			retailer.Name = name
		}
		if body.ShopName != nil {
			shopName := strings.TrimSpace(*body.ShopName)
			if shopName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Shop name cannot be empty")
			}
			retailer.ShopName = shopName
		}
		if body.Location != nil {
			retailer.Location = strings.TrimSpace(*body.Location)
		}
		if body.WhatsappEnabled != nil {
			retailer.WhatsappEnabled = *body.WhatsappEnabled
		}
		if body.SMSEnabled != nil {
			retailer.SMSEnabled = *body.SMSEnabled
		}

		if err := database.DB.Save(&retailer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update profile")
		}

		return c.JSON(retailerResponse(&retailer))
	}
}
