package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"testing"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/models"
	"flower-retail-backend/internal/otp"
	"flower-retail-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

var codePattern = regexp.MustCompile(`\d{6}`)

func TestPasswordResetFlow(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	store := otp.NewMemoryStore()
	retailer := testutil.CreateRetailer(t, "9000000001")

	app := fiber.New()
	app.Post("/api/auth/forgot-password", auth.ForgotPasswordHandler(store))
	app.Post("/api/auth/verify-otp", auth.VerifyOTPHandler(cfg, store))
	app.Post("/api/auth/reset-password", auth.ResetPasswordHandler(cfg))
	app.Post("/api/auth/login", auth.LoginHandler(cfg))

	// request a code
	resp := postJSON(t, app, "/api/auth/forgot-password", `{"phone":"9000000001"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("forgot-password status = %d, want 200", resp.StatusCode)
	}

	// the outbound SMS is recorded in message_logs; pull the code from there
	var msgLog models.MessageLog
	if err := database.DB.Where("retailer_id = ?", retailer.ID).First(&msgLog).Error; err != nil {
		t.Fatalf("expected a message log row: %v", err)
	}
	if msgLog.MessageType != models.MessageTypeSMS {
		t.Fatalf("message type = %s, want sms", msgLog.MessageType)
	}
	code := codePattern.FindString(msgLog.MessageContent)
	if code == "" {
		t.Fatalf("no code in message %q", msgLog.MessageContent)
	}

	// wrong code is rejected and does not burn the real one
	if wrong := "000000"; wrong != code {
		resp = postJSON(t, app, "/api/auth/verify-otp", `{"phone":"9000000001","code":"`+wrong+`"}`)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("verify-otp wrong code status = %d, want 401", resp.StatusCode)
		}
	}

	// right code yields a reset token
	resp = postJSON(t, app, "/api/auth/verify-otp", `{"phone":"9000000001","code":"`+code+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp status = %d, want 200", resp.StatusCode)
	}
	var verifyPayload struct {
		ResetToken string `json:"reset_token"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &verifyPayload); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}
	if verifyPayload.ResetToken == "" {
		t.Fatal("expected a reset token")
	}

	// a reset token is not a session token
	if _, err := auth.ParseClaims(cfg.JWTSecret, verifyPayload.ResetToken); err != nil {
		t.Fatalf("reset token should parse: %v", err)
	}

	// set the new password and log in with it
	resp = postJSON(t, app, "/api/auth/reset-password",
		`{"token":"`+verifyPayload.ResetToken+`","new_password":"newsecret"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset-password status = %d, want 200", resp.StatusCode)
	}

	resp = postJSON(t, app, "/api/auth/login", `{"phone":"9000000001","password":"newsecret"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login with new password status = %d, want 200", resp.StatusCode)
	}

	// the old password no longer works
	resp = postJSON(t, app, "/api/auth/login", `{"phone":"9000000001","password":"`+testutil.TestPassword+`"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("login with old password status = %d, want 401", resp.StatusCode)
	}
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	retailer := testutil.CreateRetailer(t, "9000000001")

	app := fiber.New()
	app.Post("/api/auth/reset-password", auth.ResetPasswordHandler(cfg))

	sessionToken, err := auth.GenerateToken(cfg.JWTSecret, retailer)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	resp := postJSON(t, app, "/api/auth/reset-password",
		`{"token":"`+sessionToken+`","new_password":"newsecret"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
