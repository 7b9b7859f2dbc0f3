package server

import (
	"testing"
	"time"

	"careerpath/internal/config"
)

type mockVaultClient struct {
	secrets map[string]*config.VaultSecret
}

func (m *mockVaultClient) GetSecretV2(path string) (*config.VaultSecret, error) {
	if secret, exists := m.secrets[path]; exists {
		return secret, nil
	}
	return nil, nil
}

func (m *mockVaultClient) GetStringSecret(path, key string) (string, error) {
	if secret, exists := m.secrets[path]; exists {
		if value, ok := secret.Data[key].(string); ok {
			return value, nil
		}
	}
	return "", nil
}

func (m *mockVaultClient) GetStringSliceSecret(path, key string) ([]string, error) {
	if secret, exists := m.secrets[path]; exists {
		if value, ok := secret.Data[key].([]string); ok {
			return value, nil
		}
	}
	return nil, nil
}

func newTestVaultWatcher(client VaultClientInterface) *VaultWatcher {
	return &VaultWatcher{
		client:         client,
		secretPath:     "secret/data/test",
		pollInterval:   1 * time.Minute,
		reloadCallback: func(data *CertificateData, err error) {},
		stopChan:       make(chan struct{}),
	}
}

func TestVaultWatcherFetchCertificateData(t *testing.T) {
	client := &mockVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/test": {
				Data: map[string]any{
					"cert": "new-cert-content",
					"key":  "new-key-content",
					"ca":   "new-ca-content",
				},
				Version: 1,
			},
		},
	}

	vw := newTestVaultWatcher(client)

	data, err := vw.fetchCertificateData()
	if err != nil {
		t.Fatalf("fetchCertificateData failed: %v", err)
	}

	if data.CertContent != "new-cert-content" {
		t.Errorf("CertContent = %q, want %q", data.CertContent, "new-cert-content")
	}
	if data.KeyContent != "new-key-content" {
		t.Errorf("KeyContent = %q, want %q", data.KeyContent, "new-key-content")
	}
	if data.CAContent != "new-ca-content" {
		t.Errorf("CAContent = %q, want %q", data.CAContent, "new-ca-content")
	}
}

func TestVaultWatcherVersionAdvanced(t *testing.T) {
	client := &mockVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/test": {
				Data:    map[string]any{},
				Version: 2,
			},
		},
	}

	vw := newTestVaultWatcher(client)

	// First check sees version 0 -> 2
	changed, err := vw.versionAdvanced()
	if err != nil {
		t.Fatalf("versionAdvanced failed: %v", err)
	}
	if !changed {
		t.Error("expected change to be detected")
	}

	// Version is unchanged on the second check
	changed, err = vw.versionAdvanced()
	if err != nil {
		t.Fatalf("versionAdvanced failed: %v", err)
	}
	if changed {
		t.Error("expected no change to be detected")
	}
}
