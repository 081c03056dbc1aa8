package service

import (
	"context"
	"encoding/json"
	"fmt"

	"leadops_backend/internal/adspend/provider"
	"leadops_backend/internal/adspend/repository"
	"leadops_backend/platform/secrets"
)

// CredentialsVault stores provider API credentials encrypted at rest and
// hands them to providers in decrypted form. It implements provider.Source.
type CredentialsVault struct {
	repo repository.CredentialsRepository
	key  []byte
}

// NewVault creates a credentials vault. key is the 32-byte encryption key.
func NewVault(repo repository.CredentialsRepository, key []byte) *CredentialsVault {
	return &CredentialsVault{repo: repo, key: key}
}

var _ provider.Source = (*CredentialsVault)(nil)

// Credentials returns the decrypted credential set for a provider.
func (v *CredentialsVault) Credentials(ctx context.Context, providerName string) (provider.Credentials, bool, error) {
	payload, ok, err := v.repo.Get(ctx, providerName)
	if err != nil || !ok {
		return nil, false, err
	}

	decrypted, err := secrets.Decrypt(payload, v.key)
	if err != nil {
		return nil, false, fmt.Errorf("decrypt credentials: %w", err)
	}

	var values provider.Credentials
	if err := json.Unmarshal([]byte(decrypted), &values); err != nil {
		return nil, false, fmt.Errorf("decode credentials: %w", err)
	}
	return values, true, nil
}

// Store encrypts and persists a credential set.
func (v *CredentialsVault) Store(ctx context.Context, providerName string, values map[string]string) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	encrypted, err := secrets.Encrypt(string(payload), v.key)
	if err != nil {
		return fmt.Errorf("encrypt credentials: %w", err)
	}
	return v.repo.Set(ctx, providerName, encrypted)
}

// Clear removes a stored credential set.
func (v *CredentialsVault) Clear(ctx context.Context, providerName string) error {
	return v.repo.Delete(ctx, providerName)
}
