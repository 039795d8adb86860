package customer_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/config"
	"flower-retail-backend/internal/customer"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"
	"flower-retail-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newCustomerApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.JWTMiddleware(cfg))
	app.Post("/api/customers", customer.CreateCustomerHandler())
	app.Get("/api/customers", customer.ListCustomersHandler())
	app.Get("/api/customers/:id", customer.GetCustomerHandler())
	app.Put("/api/customers/:id", customer.UpdateCustomerHandler())
	app.Delete("/api/customers/:id", customer.DeleteCustomerHandler())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func decodeCustomer(t *testing.T, resp *http.Response) customer.CustomerResponse {
	t.Helper()
	var out customer.CustomerResponse
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode customer: %v", err)
	}
	return out
}

func TestCreateCustomerDefaults(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	app := newCustomerApp(cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/customers", testutil.AuthHeader(t, cfg, retailer),
		`{"name":"  Lakshmi ","phone":"7000000001"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	out := decodeCustomer(t, resp)
	if out.Name != "Lakshmi" {
		t.Fatalf("name = %q, want trimmed Lakshmi", out.Name)
	}
	if out.PaymentType != string(models.PaymentTypeDaily) {
		t.Fatalf("payment_type = %s, want daily", out.PaymentType)
	}
	if !out.PendingDues.Equal(decimal.Zero) {
		t.Fatalf("pending_dues = %s, want 0", out.PendingDues)
	}
}

func TestCreateCustomerRejectsBadPaymentType(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	app := newCustomerApp(cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/customers", testutil.AuthHeader(t, cfg, retailer),
		`{"name":"Lakshmi","phone":"7000000001","payment_type":"weekly"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListCustomersSearch(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	app := newCustomerApp(cfg)
	header := testutil.AuthHeader(t, cfg, retailer)

	for _, name := range []string{"Lakshmi", "Meena", "Lakshman"} {
		resp := doJSON(t, app, http.MethodPost, "/api/customers", header,
			`{"name":"`+name+`","phone":"7000000001"}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed %s: status = %d", name, resp.StatusCode)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/api/customers?search=laksh", header, "")
	var rows []customer.CustomerResponse
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("search rows = %d, want 2", len(rows))
	}
}

func TestCustomersAreTenantScoped(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	other := testutil.CreateRetailer(t, "9000000002")
	app := newCustomerApp(cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/customers", testutil.AuthHeader(t, cfg, other),
		`{"name":"Lakshmi","phone":"7000000001"}`)
	created := decodeCustomer(t, resp)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/"+created.ID, testutil.AuthHeader(t, cfg, retailer), "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-tenant get: status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	app := newCustomerApp(cfg)
	header := testutil.AuthHeader(t, cfg, retailer)

	created := decodeCustomer(t, doJSON(t, app, http.MethodPost, "/api/customers", header,
		`{"name":"Lakshmi","phone":"7000000001"}`))

	resp := doJSON(t, app, http.MethodPut, "/api/customers/"+created.ID, header,
		`{"payment_type":"on_demand"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	updated := decodeCustomer(t, resp)
	if updated.PaymentType != string(models.PaymentTypeOnDemand) {
		t.Fatalf("payment_type = %s, want on_demand", updated.PaymentType)
	}
	if updated.Name != "Lakshmi" {
		t.Fatalf("name = %q, untouched field changed", updated.Name)
	}
}

func TestDeleteCustomerBlockedByPurchases(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	app := newCustomerApp(cfg)
	header := testutil.AuthHeader(t, cfg, retailer)

	created := decodeCustomer(t, doJSON(t, app, http.MethodPost, "/api/customers", header,
		`{"name":"Lakshmi","phone":"7000000001"}`))

	flower := &models.FlowerType{ID: uuid.NewString(), RetailerID: retailer.ID, Name: "Rose", IsActive: true}
	if err := database.DB.Create(flower).Error; err != nil {
		t.Fatalf("create flower: %v", err)
	}
	p := &models.CustomerPurchase{
		ID: uuid.NewString(), RetailerID: retailer.ID,
		CustomerID: created.ID, FlowerTypeID: flower.ID,
		Quantity:      decimal.RequireFromString("1"),
		PricePerKg:    decimal.RequireFromString("40"),
		TotalAmount:   decimal.RequireFromString("40"),
		PurchaseDate:  mustDate(t, "2026-08-29"),
		TimeSlot:      models.TimeSlotMorning,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := database.DB.Create(p).Error; err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	resp := doJSON(t, app, http.MethodDelete, "/api/customers/"+created.ID, header, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}

	var count int64
	database.DB.Model(&models.Customer{}).Where("id = ?", created.ID).Count(&count)
	if count != 1 {
		t.Fatal("customer was deleted despite purchase records")
	}
}

func TestDeleteCustomerWithoutPurchases(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")
	app := newCustomerApp(cfg)
	header := testutil.AuthHeader(t, cfg, retailer)

	created := decodeCustomer(t, doJSON(t, app, http.MethodPost, "/api/customers", header,
		`{"name":"Lakshmi","phone":"7000000001"}`))

	resp := doJSON(t, app, http.MethodDelete, "/api/customers/"+created.ID, header, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	var count int64
	database.DB.Model(&models.Customer{}).Where("id = ?", created.ID).Count(&count)
	if count != 0 {
		t.Fatal("customer row still present after delete")
	}
}
