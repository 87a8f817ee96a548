package utils

import (
	"strings"
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("alice@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	if !strings.HasPrefix(token, "Bearer ") {
		t.Fatalf("token missing Bearer prefix: %q", token)
	}

	email, role, exp, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if email != "alice@example.com" || role != "user" {
		t.Fatalf("claims mismatch: email=%q role=%q", email, role)
	}
	if exp == 0 {
		t.Fatal("exp claim missing")
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	if _, _, _, err := ParseJWT(""); err == nil {
		t.Fatal("empty token accepted")
	}
	if _, _, _, err := ParseJWT("Bearer not.a.token"); err == nil {
		t.Fatal("malformed token accepted")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword("hunter2hunter2", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong-password", hash) {
		t.Fatal("wrong password accepted")
	}
}
