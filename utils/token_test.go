package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(6)
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != 6 {
		t.Fatalf("length = %d, want 6", len(token))
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenCharset, r) {
			t.Fatalf("token %q contains %q outside the charset", token, r)
		}
	}

	other, err := GenerateRandomToken(6)
	if err != nil {
		t.Fatal(err)
	}
	if token == other {
		t.Fatalf("two tokens identical: %q", token)
	}
}

func TestGenerateNumericCode(t *testing.T) {
	code, err := GenerateNumericCode(6)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 6 {
		t.Fatalf("length = %d, want 6 (short codes must be zero-padded)", len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains non-digit %q", code, r)
		}
	}
}
