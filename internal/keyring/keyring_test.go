package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("llt-abc123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	got, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if got != "llt-abc123" {
		t.Errorf("GetToken = %q, want %q", got, "llt-abc123")
	}
}

func TestGetTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	if err := DeleteToken(); err != nil && !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteToken failed: %v", err)
	}

	if _, err := GetToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetTokenRejectsEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestDeleteToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("llt-temp"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}
	if _, err := GetToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("token still present after delete: %v", err)
	}
}
