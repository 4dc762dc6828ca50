package middleware

import (
	"testing"
	"time"

	"voyagerie/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &Claims{
		Username: "pat",
		UserID:   userID,
		Role:     []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateJWT(t *testing.T) {
	signed := signTestToken(t, "u1234567890")

	claims, err := ValidateJWT("Bearer " + signed)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != "u1234567890" {
		t.Errorf("UserID = %q, want u1234567890", claims.UserID)
	}
	if claims.Username != "pat" {
		t.Errorf("Username = %q, want pat", claims.Username)
	}
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	if _, err := ValidateJWT(""); err == nil {
		t.Error("empty header accepted")
	}
	if _, err := ValidateJWT("Bearer "); err == nil {
		t.Error("blank token accepted")
	}
	if _, err := ValidateJWT("Bearer not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}
