package report_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/config"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"
	"flower-retail-backend/internal/report"
	"flower-retail-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newReportApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.JWTMiddleware(cfg))
	app.Get("/api/dashboard/flower-summary", report.FlowerSummaryHandler())
	app.Get("/api/reports/summary", report.SummaryHandler())
	app.Get("/api/payments/overview", report.PaymentsOverviewHandler())
	return app
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func seedDay(t *testing.T, retailerID string) {
	t.Helper()

	farmer := &models.Farmer{
		ID: uuid.NewString(), RetailerID: retailerID,
		Name: "Ramasamy", Phone: "8000000001",
		OutstandingAmount: decimal.RequireFromString("250"),
	}
	if err := database.DB.Create(farmer).Error; err != nil {
		t.Fatalf("create farmer: %v", err)
	}

	cust := &models.Customer{
		ID: uuid.NewString(), RetailerID: retailerID,
		Name: "Lakshmi", Phone: "7000000001",
		PaymentType: models.PaymentTypeDaily,
		PendingDues: decimal.RequireFromString("180"),
	}
	if err := database.DB.Create(cust).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}

	flower := &models.FlowerType{
		ID: uuid.NewString(), RetailerID: retailerID,
		Name: "Jasmine", IsActive: true,
	}
	if err := database.DB.Create(flower).Error; err != nil {
		t.Fatalf("create flower type: %v", err)
	}

	for _, qty := range []string{"3.5", "1.5"} {
		s := &models.DailySupply{
			ID: uuid.NewString(), RetailerID: retailerID,
			FarmerID: farmer.ID, FlowerTypeID: flower.ID,
			Quantity:   decimal.RequireFromString(qty),
			SupplyDate: today(),
		}
		if err := database.DB.Create(s).Error; err != nil {
			t.Fatalf("create supply: %v", err)
		}
	}

	p := &models.CustomerPurchase{
		ID: uuid.NewString(), RetailerID: retailerID,
		CustomerID: cust.ID, FlowerTypeID: flower.ID,
		Quantity:      decimal.RequireFromString("2"),
		PricePerKg:    decimal.RequireFromString("40"),
		TotalAmount:   decimal.RequireFromString("80"),
		PurchaseDate:  today(),
		TimeSlot:      models.TimeSlotMorning,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := database.DB.Create(p).Error; err != nil {
		t.Fatalf("create purchase: %v", err)
	}
}

func getJSON(t *testing.T, app *fiber.App, path, authHeader string, out interface{}) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if out != nil {
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func TestSummaryTotals(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	seedDay(t, retailer.ID)
	app := newReportApp(cfg)

	var resp report.SummaryResponse
	getJSON(t, app, "/api/reports/summary?range=today", testutil.AuthHeader(t, cfg, retailer), &resp)

	if !resp.TotalSupplyKg.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("total_supply_kg = %s, want 5", resp.TotalSupplyKg)
	}
	if resp.TotalSales != 1 {
		t.Fatalf("total_sales = %d, want 1", resp.TotalSales)
	}
	if !resp.TotalRevenue.Equal(decimal.RequireFromString("80")) {
		t.Fatalf("total_revenue = %s, want 80", resp.TotalRevenue)
	}
	if resp.ActiveFarmers != 1 || resp.ActiveCustomers != 1 {
		t.Fatalf("active counts = %d farmers / %d customers, want 1/1", resp.ActiveFarmers, resp.ActiveCustomers)
	}
	if !resp.PendingPayments.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("pending_payments = %s, want 250", resp.PendingPayments)
	}
}

func TestSummaryRejectsBadRange(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	app := newReportApp(cfg)

	resp := getJSON(t, app, "/api/reports/summary?range=decade", testutil.AuthHeader(t, cfg, retailer), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestFlowerSummaryListsEveryActiveFlower(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	seedDay(t, retailer.ID)
	// a second active flower with no supplies today still shows up, at zero
	idle := &models.FlowerType{
		ID: uuid.NewString(), RetailerID: retailer.ID,
		Name: "Rose", IsActive: true,
	}
	if err := database.DB.Create(idle).Error; err != nil {
		t.Fatalf("create flower type: %v", err)
	}
	app := newReportApp(cfg)

	var items []report.FlowerSummaryItem
	getJSON(t, app, "/api/dashboard/flower-summary", testutil.AuthHeader(t, cfg, retailer), &items)

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	byName := map[string]decimal.Decimal{}
	for _, it := range items {
		byName[it.FlowerName] = it.TodayQuantity
	}
	if !byName["Jasmine"].Equal(decimal.RequireFromString("5")) {
		t.Fatalf("Jasmine = %s, want 5", byName["Jasmine"])
	}
	if !byName["Rose"].Equal(decimal.Zero) {
		t.Fatalf("Rose = %s, want 0", byName["Rose"])
	}
}

func TestPaymentsOverview(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	seedDay(t, retailer.ID)
	// another tenant's balances must not leak in
	other := testutil.CreateRetailer(t, "9000000002")
	seedDay(t, other.ID)
	app := newReportApp(cfg)

	var resp report.PaymentsOverviewResponse
	getJSON(t, app, "/api/payments/overview", testutil.AuthHeader(t, cfg, retailer), &resp)

	if !resp.FarmersPending.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("farmers_pending = %s, want 250", resp.FarmersPending)
	}
	if !resp.CustomersPending.Equal(decimal.RequireFromString("180")) {
		t.Fatalf("customers_pending = %s, want 180", resp.CustomersPending)
	}
}
