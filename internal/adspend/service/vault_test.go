package service

import (
	"context"
	"testing"
)

func TestVault_StoreAndCredentialsRoundTrip(t *testing.T) {
	creds := &memCreds{}
	vault := NewVault(creds, testVaultKey())

	values := map[string]string{"access_token": "abc", "advertiser_id": "123"}
	if err := vault.Store(context.Background(), "tiktok", values); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if creds.payloads["tiktok"] == `{"access_token":"abc","advertiser_id":"123"}` {
		t.Fatalf("credentials must not be stored in plaintext")
	}

	got, ok, err := vault.Credentials(context.Background(), "tiktok")
	if err != nil {
		t.Fatalf("credentials failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected stored credentials")
	}
	if got["access_token"] != "abc" || got["advertiser_id"] != "123" {
		t.Fatalf("round trip mismatch: %v", got)
	}
}

func TestVault_MissingCredentials(t *testing.T) {
	vault := NewVault(&memCreds{}, testVaultKey())

	_, ok, err := vault.Credentials(context.Background(), "google_ads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing credentials")
	}
}

func TestVault_Clear(t *testing.T) {
	creds := &memCreds{}
	vault := NewVault(creds, testVaultKey())

	if err := vault.Store(context.Background(), "tiktok", map[string]string{"access_token": "abc"}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := vault.Clear(context.Background(), "tiktok"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, ok, _ := vault.Credentials(context.Background(), "tiktok"); ok {
		t.Fatalf("expected credentials removed")
	}
}
