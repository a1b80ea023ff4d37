package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "storynarrator"

// OpenKeyring opens the OS keyring used for provider API keys.
func OpenKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              serviceName,
		KeychainTrustApplication: true,
		LibSecretCollectionName:  serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

type KeyringService struct {
	ring keyring.Keyring
}

func NewKeyringService(ring keyring.Keyring) *KeyringService {
	return &KeyringService{ring: ring}
}

func (s *KeyringService) available() error {
	if s == nil || s.ring == nil {
		return errors.New("keyring is not available")
	}
	return nil
}

func (s *KeyringService) StoreApiKey(provider string, apiKey string) error {
	if err := s.available(); err != nil {
		return err
	}
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return errors.New("provider is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return errors.New("API key is empty")
	}

	return s.ring.Set(keyring.Item{
		Key:         provider,
		Data:        []byte(strings.TrimSpace(apiKey)),
		Label:       provider + " API key",
		Description: "API key for " + provider + " used by Story Narrator",
	})
}

// GetApiKey returns an empty key, and no error, when none is stored.
func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if err := s.available(); err != nil {
		return "", err
	}
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return "", errors.New("provider is required")
	}
	item, err := s.ring.Get(provider)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(item.Data), nil
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if err := s.available(); err != nil {
		return err
	}
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return errors.New("provider is required")
	}
	if err := s.ring.Remove(provider); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

func (s *KeyringService) ListApiKeys() ([]map[string]string, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	providers, err := s.ring.Keys()
	if err != nil {
		return nil, err
	}

	results := make([]map[string]string, 0, len(providers))
	for _, provider := range providers {
		results = append(results, map[string]string{
			"provider":    provider,
			"label":       provider + " API key",
			"description": "API key for " + provider + " used by Story Narrator",
		})
	}
	return results, nil
}
