// Package testutil sets up in-memory databases and authenticated retailers
// for handler tests.
package testutil

import (
	"testing"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/config"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestPassword is the password every retailer created by CreateRetailer has.
const TestPassword = "secret123"

// SetupDB opens a fresh in-memory sqlite database, migrates the schema and
// installs it as the package-global connection.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	database.DB = db
	return db
}

func Config() *config.Config {
	return &config.Config{
		HTTPPort:  "0",
		JWTSecret: "0123456789abcdef0123456789abcdef",
	}
}

func CreateRetailer(t *testing.T, phone string) *models.Retailer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	r := &models.Retailer{
		ID:           uuid.NewString(),
		Phone:        phone,
		LoginEmail:   phone + "@" + auth.LoginEmailDomain,
		PasswordHash: string(hash),
		Name:         "Test Retailer",
		ShopName:     "Test Flower Shop",
		Location:     "Madurai",
	}
	if err := database.DB.Create(r).Error; err != nil {
		t.Fatalf("create retailer: %v", err)
	}
	return r
}

func AuthHeader(t *testing.T, cfg *config.Config, r *models.Retailer) string {
	t.Helper()

	token, err := auth.GenerateToken(cfg.JWTSecret, r)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}
