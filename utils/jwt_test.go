package utils

import (
	"testing"
	"time"
)

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT("secret", 42, "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, _ := GenerateJWT("secret", 42, "user", time.Hour)
	if _, err := ParseJWT("other", token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}

func TestJWTExpired(t *testing.T) {
	token, _ := GenerateJWT("secret", 42, "user", -time.Minute)
	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
