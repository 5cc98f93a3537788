package crypto

import (
	"strings"
	"testing"
)

func TestGenerateAccessCodeIsFiveDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateAccessCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 5 {
			t.Fatalf("expected 5 characters, got %q", code)
		}
		if strings.Trim(code, "0123456789") != "" {
			t.Fatalf("expected digits only, got %q", code)
		}
	}
}

func TestGenerateNumericCodeRejectsBadLength(t *testing.T) {
	if _, err := GenerateNumericCode(0); err == nil {
		t.Fatal("expected error for zero digits")
	}
	if _, err := GenerateNumericCode(19); err == nil {
		t.Fatal("expected error for 19 digits")
	}
}

func TestHashAndCheckSecret(t *testing.T) {
	hash, err := HashSecret("4242")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckSecret("4242", hash) {
		t.Fatal("expected matching secret to check")
	}
	if CheckSecret("4243", hash) {
		t.Fatal("expected wrong secret to fail")
	}
}
