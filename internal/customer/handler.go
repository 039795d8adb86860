package customer

import (
	"strings"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	CustomerCode string `json:"customer_code"`
	PaymentType  string `json:"payment_type"` // daily | on_demand, defaults to daily
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	CustomerCode *string `json:"customer_code"`
	PaymentType  *string `json:"payment_type"`
}

type CustomerResponse struct {
	ID               string          `json:"id"`
	RetailerID       string          `json:"retailer_id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	CustomerCode     string          `json:"customer_code"`
	PaymentType      string          `json:"payment_type"`
	PendingDues      decimal.Decimal `json:"pending_dues"`
	LastPurchaseDate *string         `json:"last_purchase_date"`
}

func toResponse(cust *models.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:           cust.ID,
		RetailerID:   cust.RetailerID,
		Name:         cust.Name,
		Phone:        cust.Phone,
		CustomerCode: cust.CustomerCode,
		PaymentType:  string(cust.PaymentType),
		PendingDues:  cust.PendingDues,
	}
	if cust.LastPurchaseDate != nil {
		d := cust.LastPurchaseDate.Format("2006-01-02")
		resp.LastPurchaseDate = &d
	}
	return resp
}

func parsePaymentType(s string) (models.PaymentType, error) {
	switch models.PaymentType(s) {
	case models.PaymentTypeDaily, models.PaymentTypeOnDemand:
		return models.PaymentType(s), nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "payment_type must be daily or on_demand")
}

func matchesSearch(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		if body.Name == "" || body.Phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and phone are required")
		}

		paymentType := models.PaymentTypeDaily
		if body.PaymentType != "" {
			paymentType, err = parsePaymentType(body.PaymentType)
			if err != nil {
				return err
			}
		}

		cust := models.Customer{
			ID:           uuid.NewString(),
			RetailerID:   retailerID,
			Name:         body.Name,
			Phone:        body.Phone,
			CustomerCode: strings.TrimSpace(body.CustomerCode),
			PaymentType:  paymentType,
			PendingDues:  decimal.Zero,
		}

		if err := database.DB.Create(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create customer")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&cust))
	}
}

// GET /api/customers?search=
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var customers []models.Customer
		if err := database.DB.Where("retailer_id = ?", retailerID).
			Order("name asc").
			Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customers")
		}

		search := c.Query("search")
		resp := make([]CustomerResponse, 0, len(customers))
		for i := range customers {
			if search != "" && !matchesSearch(customers[i].Name, search) {
				continue
			}
			resp = append(resp, toResponse(&customers[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/customers/:id
func GetCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, "id = ? AND retailer_id = ?", c.Params("id"), retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		return c.JSON(toResponse(&cust))
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, "id = ? AND retailer_id = ?", c.Params("id"), retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			cust.Name = name
		}
		if body.Phone != nil {
			phone := strings.TrimSpace(*body.Phone)
			if phone == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Phone cannot be empty")
			}
			cust.Phone = phone
		}
		if body.CustomerCode != nil {
			cust.CustomerCode = strings.TrimSpace(*body.CustomerCode)
		}
		if body.PaymentType != nil {
			paymentType, err := parsePaymentType(*body.PaymentType)
			if err != nil {
				return err
			}
			cust.PaymentType = paymentType
		}

		if err := database.DB.Save(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update customer")
		}

		return c.JSON(toResponse(&cust))
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, "id = ? AND retailer_id = ?", c.Params("id"), retailerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		var purchaseCount int64
		database.DB.Model(&models.CustomerPurchase{}).Where("customer_id = ?", cust.ID).Count(&purchaseCount)
		if purchaseCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Customer has purchase records and cannot be deleted")
		}

		if err := database.DB.Delete(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete customer")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
