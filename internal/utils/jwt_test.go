package utils

import (
	"testing"

	"mediconnect-server/internal/config"
	"mediconnect-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 15,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(42, models.RoleDoctor, cfg)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.SubjectID != 42 {
		t.Errorf("SubjectID = %d, want 42", claims.SubjectID)
	}
	if claims.Role != models.RoleDoctor {
		t.Errorf("Role = %s, want %s", claims.Role, models.RoleDoctor)
	}
	if claims.ID == "" {
		t.Error("token ID claim is empty")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(42, models.RolePatient, cfg)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("ValidateToken() with wrong secret succeeded")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token", "test-secret"); err == nil {
		t.Error("ValidateToken() with garbage succeeded")
	}
}
