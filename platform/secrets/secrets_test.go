package secrets

import (
	"bytes"
	"testing"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testKey()

	encrypted, err := Encrypt(`{"access_token":"abc"}`, key)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if encrypted == `{"access_token":"abc"}` {
		t.Fatalf("ciphertext must differ from plaintext")
	}

	decrypted, err := Decrypt(encrypted, key)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if decrypted != `{"access_token":"abc"}` {
		t.Fatalf("round trip mismatch: %q", decrypted)
	}
}

func TestEncrypt_RejectsShortKey(t *testing.T) {
	if _, err := Encrypt("secret", []byte("short")); err == nil {
		t.Fatalf("expected error for short key")
	}
}

func TestDecrypt_RejectsWrongKey(t *testing.T) {
	encrypted, err := Encrypt("secret", testKey())
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	wrong := bytes.Repeat([]byte{0x24}, 32)
	if _, err := Decrypt(encrypted, wrong); err == nil {
		t.Fatalf("expected decryption failure with wrong key")
	}
}

func TestDecrypt_RejectsGarbage(t *testing.T) {
	if _, err := Decrypt("not-hex", testKey()); err == nil {
		t.Fatalf("expected error for non-hex input")
	}
	if _, err := Decrypt("abcd", testKey()); err == nil {
		t.Fatalf("expected error for truncated ciphertext")
	}
}
