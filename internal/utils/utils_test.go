package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/fopmanager/fop-api/internal/models"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatal("valid password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatal("invalid password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := models.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "fop-manager",
		Audience:  "fop-manager-users",
		Expiry:    time.Hour,
	}

	token, err := GenerateJWT(models.JWT{ID: 5, Name: "Olena", Username: "olena@example.com", Role: "seller"}, cfg)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	claims, err := ParseJWT(token, cfg)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if claims.ID != 5 || claims.Role != "seller" || claims.Username != "olena@example.com" {
		t.Fatalf("claims mangled: %+v", claims)
	}

	cfg.SecretKey = "other-secret"
	if _, err := ParseJWT(token, cfg); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Date   string `json:"date" validate:"required,datetime=2006-01-02"`
		Status string `json:"status" validate:"oneof=paid unpaid"`
	}

	if err := ValidateStruct(&payload{Date: "2024-03-01", Status: "paid"}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if err := ValidateStruct(&payload{Date: "01.03.2024", Status: "paid"}); err == nil {
		t.Fatal("malformed date accepted")
	}
	if err := ValidateStruct(&payload{Date: "2024-03-01", Status: "maybe"}); err == nil {
		t.Fatal("unknown status accepted")
	}
}

func TestGenerateMemoNo(t *testing.T) {
	memo := GenerateMemoNo()
	if !strings.HasPrefix(memo, "PR-") || len(memo) != 11 {
		t.Fatalf("unexpected memo format: %q", memo)
	}
	if memo == GenerateMemoNo() {
		t.Fatal("memo numbers should not repeat")
	}
}
