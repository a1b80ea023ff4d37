package services

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyringService_StoreGetDelete(t *testing.T) {
	svc := NewKeyringService(keyring.NewArrayKeyring(nil))

	require.NoError(t, svc.StoreApiKey("openai", " sk-test "))

	key, err := svc.GetApiKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)

	list, err := svc.ListApiKeys()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "openai", list[0]["provider"])

	require.NoError(t, svc.DeleteApiKey("openai"))
	key, err = svc.GetApiKey("openai")
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestKeyringService_Validation(t *testing.T) {
	svc := NewKeyringService(keyring.NewArrayKeyring(nil))

	assert.EqualError(t, svc.StoreApiKey("", "k"), "provider is required")
	assert.EqualError(t, svc.StoreApiKey("openai", "  "), "API key is empty")
	assert.NoError(t, svc.DeleteApiKey("gemini"))
}

func TestKeyringService_NoRing(t *testing.T) {
	svc := NewKeyringService(nil)

	_, err := svc.GetApiKey("openai")
	assert.EqualError(t, err, "keyring is not available")
	assert.EqualError(t, svc.StoreApiKey("openai", "k"), "keyring is not available")
}
