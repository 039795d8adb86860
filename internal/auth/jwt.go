package auth

import (
	"time"

	"flower-retail-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const PurposePasswordReset = "password_reset"

type JWTCustomClaims struct {
	RetailerID string `json:"retailer_id"`
	Phone      string `json:"phone"`
	Purpose    string `json:"purpose,omitempty"` // empty for session tokens
	jwt.RegisteredClaims
}

func GenerateToken(secret string, retailer *models.Retailer) (string, error) {
	claims := &JWTCustomClaims{
		RetailerID: retailer.ID,
		Phone:      retailer.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   retailer.LoginEmail,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateResetToken issues a short-lived token that is only good for
// resetting the password, handed out after OTP verification.
func GenerateResetToken(secret string, retailer *models.Retailer) (string, error) {
	claims := &JWTCustomClaims{
		RetailerID: retailer.ID,
		Phone:      retailer.Phone,
		Purpose:    PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseClaims validates signature and expiry and returns the claims.
func ParseClaims(secret, tokenStr string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
