package auth

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"flower-retail-backend/internal/config"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"
	"flower-retail-backend/internal/otp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 5 * time.Minute

type ForgotPasswordRequest struct {
	Phone string `json:"phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// POST /api/auth/forgot-password
//
// Issues a 6-digit code and records the outbound SMS in message_logs. Actual
// delivery is not integrated here.
func ForgotPasswordHandler(store otp.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ForgotPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Phone = strings.TrimSpace(body.Phone)
		if body.Phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Phone is required")
		}

		var retailer models.Retailer
		if err := database.DB.Where("phone = ?", body.Phone).First(&retailer).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Phone number not registered")
		}

		code, err := generateCode()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate code")
		}

		if err := store.Set(c.Context(), retailer.Phone, code, otpTTL); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store code")
		}

		msgLog := models.MessageLog{
			ID:             uuid.NewString(),
			RetailerID:     retailer.ID,
			RecipientType:  models.RecipientSystem,
			RecipientID:    retailer.ID,
			PhoneNumber:    retailer.Phone,
			MessageType:    models.MessageTypeSMS,
			MessageContent: fmt.Sprintf("Your password reset code is %s. It expires in 5 minutes.", code),
			DeliveryStatus: models.DeliveryStatusSent,
			SentAt:         time.Now(),
		}
		if err := database.DB.Create(&msgLog).Error; err != nil {
			log.Printf("message log write failed: %v", err)
		}

		return c.JSON(fiber.Map{
			"message":    "Reset code sent",
			"expires_in": int(otpTTL.Seconds()),
		})
	}
}

// POST /api/auth/verify-otp
func VerifyOTPHandler(cfg *config.Config, store otp.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VerifyOTPRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Phone = strings.TrimSpace(body.Phone)
		body.Code = strings.TrimSpace(body.Code)
		if body.Phone == "" || body.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Phone and code are required")
		}

		ok, err := store.Verify(c.Context(), body.Phone, body.Code)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not verify code")
		}
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired code")
		}

		var retailer models.Retailer
		if err := database.DB.Where("phone = ?", body.Phone).First(&retailer).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Phone number not registered")
		}

		token, err := GenerateResetToken(cfg.JWTSecret, &retailer)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{"reset_token": token})
	}
}

// POST /api/auth/reset-password
func ResetPasswordHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if len(body.NewPassword) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
		}

		claims, err := ParseClaims(cfg.JWTSecret, body.Token)
		if err != nil || claims.Purpose != PurposePasswordReset {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired reset token")
		}

		var retailer models.Retailer
		if err := database.DB.First(&retailer, "id = ?", claims.RetailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Retailer not found")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}
		retailer.PasswordHash = string(hash)

		if err := database.DB.Save(&retailer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update password")
		}

		return c.JSON(fiber.Map{"message": "Password updated"})
	}
}
