package report

import (
	"log"
	"time"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type FlowerSummaryItem struct {
	FlowerTypeID  string          `json:"flower_type_id"`
	FlowerName    string          `json:"flower_name"`
	TodayQuantity decimal.Decimal `json:"today_quantity"`
}

type SummaryResponse struct {
	Range           string          `json:"range"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	TotalSupplyKg   decimal.Decimal `json:"total_supply_kg"`
	TotalSales      int64           `json:"total_sales"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	ActiveFarmers   int64           `json:"active_farmers"`
	ActiveCustomers int64           `json:"active_customers"`
	PendingPayments decimal.Decimal `json:"pending_payments"`
}

type PaymentsOverviewResponse struct {
	FarmersPending   decimal.Decimal `json:"farmers_pending"`
	CustomersPending decimal.Decimal `json:"customers_pending"`
}

// rangeStart maps a report range to its start day using the fixed calendar
// offsets the mobile app used.
func rangeStart(rangeName string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch rangeName {
	case "", "today":
		return today, nil
	case "week":
		return today.AddDate(0, 0, -7), nil
	case "month":
		return today.AddDate(0, -1, 0), nil
	case "year":
		return today.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "range must be today, week, month or year")
}

// GET /api/dashboard/flower-summary
//
// Today's supplied quantity per active flower type, for the dashboard grid.
func FlowerSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		var flowers []models.FlowerType
		if err := database.DB.Where("retailer_id = ? AND is_active = ?", retailerID, true).
			Order("name asc").
			Find(&flowers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load flower types")
		}

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		type row struct {
			FlowerTypeID string          `gorm:"column:flower_type_id"`
			Total        decimal.Decimal `gorm:"column:total"`
		}
		var rows []row
		if err := database.DB.Model(&models.DailySupply{}).
			Select("flower_type_id, COALESCE(SUM(quantity), 0) as total").
			Where("retailer_id = ? AND supply_date = ?", retailerID, today).
			Group("flower_type_id").
			Scan(&rows).Error; err != nil {
			// a failed read renders as an empty day, same as the client did
			log.Printf("flower summary read failed: %v", err)
		}

		totals := make(map[string]decimal.Decimal, len(rows))
		for _, r := range rows {
			totals[r.FlowerTypeID] = r.Total
		}

		resp := make([]FlowerSummaryItem, 0, len(flowers))
		for _, f := range flowers {
			qty, ok := totals[f.ID]
			if !ok {
				qty = decimal.Zero
			}
			resp = append(resp, FlowerSummaryItem{
				FlowerTypeID:  f.ID,
				FlowerName:    f.Name,
				TodayQuantity: qty,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/reports/summary?range=today|week|month|year
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		rangeName := c.Query("range", "today")
		now := time.Now()
		from, err := rangeStart(rangeName, now)
		if err != nil {
			return err
		}
		to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		resp := SummaryResponse{
			Range:           rangeName,
			From:            from.Format("2006-01-02"),
			To:              to.Format("2006-01-02"),
			TotalSupplyKg:   decimal.Zero,
			TotalRevenue:    decimal.Zero,
			PendingPayments: decimal.Zero,
		}

		type sumRow struct {
			Total decimal.Decimal `gorm:"column:total"`
		}

		var supplySum sumRow
		if err := database.DB.Model(&models.DailySupply{}).
			Select("COALESCE(SUM(quantity), 0) as total").
			Where("retailer_id = ? AND supply_date >= ? AND supply_date <= ?", retailerID, from, to).
			Scan(&supplySum).Error; err != nil {
			log.Printf("supply sum read failed: %v", err)
		} else {
			resp.TotalSupplyKg = supplySum.Total
		}

		if err := database.DB.Model(&models.CustomerPurchase{}).
			Where("retailer_id = ? AND purchase_date >= ? AND purchase_date <= ?", retailerID, from, to).
			Count(&resp.TotalSales).Error; err != nil {
			log.Printf("sales count read failed: %v", err)
		}

		var revenueSum sumRow
		if err := database.DB.Model(&models.CustomerPurchase{}).
			Select("COALESCE(SUM(total_amount), 0) as total").
			Where("retailer_id = ? AND purchase_date >= ? AND purchase_date <= ?", retailerID, from, to).
			Scan(&revenueSum).Error; err != nil {
			log.Printf("revenue sum read failed: %v", err)
		} else {
			resp.TotalRevenue = revenueSum.Total
		}

		if err := database.DB.Model(&models.Farmer{}).
			Where("retailer_id = ?", retailerID).
			Count(&resp.ActiveFarmers).Error; err != nil {
			log.Printf("farmer count read failed: %v", err)
		}

		if err := database.DB.Model(&models.CustomerPurchase{}).
			Where("retailer_id = ? AND purchase_date >= ? AND purchase_date <= ?", retailerID, from, to).
			Distinct("customer_id").
			Count(&resp.ActiveCustomers).Error; err != nil {
			log.Printf("customer count read failed: %v", err)
		}

		var outstandingSum sumRow
		if err := database.DB.Model(&models.Farmer{}).
			Select("COALESCE(SUM(outstanding_amount), 0) as total").
			Where("retailer_id = ?", retailerID).
			Scan(&outstandingSum).Error; err != nil {
			log.Printf("outstanding sum read failed: %v", err)
		} else {
			resp.PendingPayments = outstandingSum.Total
		}

		return c.JSON(resp)
	}
}

// GET /api/payments/overview
func PaymentsOverviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		retailerID, err := auth.RetailerID(c)
		if err != nil {
			return err
		}

		type sumRow struct {
			Total decimal.Decimal `gorm:"column:total"`
		}

		var farmers, customers sumRow
		if err := database.DB.Model(&models.Farmer{}).
			Select("COALESCE(SUM(outstanding_amount), 0) as total").
			Where("retailer_id = ?", retailerID).
			Scan(&farmers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute farmer totals")
		}
		if err := database.DB.Model(&models.Customer{}).
			Select("COALESCE(SUM(pending_dues), 0) as total").
			Where("retailer_id = ?", retailerID).
			Scan(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute customer totals")
		}

		return c.JSON(PaymentsOverviewResponse{
			FarmersPending:   farmers.Total,
			CustomersPending: customers.Total,
		})
	}
}
