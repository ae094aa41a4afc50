package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veloraid/velora/internal/provider"
)

func TestSignature_Deterministic(t *testing.T) {
	first, err := provider.Signature("api-id-123", "api-key-456")
	require.NoError(t, err)

	second, err := provider.Signature("api-id-123", "api-key-456")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSignature_Shape(t *testing.T) {
	sign, err := provider.Signature("someid", "somekey")
	require.NoError(t, err)

	assert.Len(t, sign, 32)
	assert.Regexp(t, `^[0-9a-f]{32}$`, sign)
}

func TestSignature_DistinctInputs(t *testing.T) {
	a, err := provider.Signature("id-a", "key")
	require.NoError(t, err)
	b, err := provider.Signature("id-b", "key")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSignature_MissingSecrets(t *testing.T) {
	tests := []struct {
		name   string
		apiID  string
		apiKey string
	}{
		{"empty id", "", "key"},
		{"empty key", "id", ""},
		{"both empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := provider.Signature(tc.apiID, tc.apiKey)
			assert.ErrorIs(t, err, provider.ErrMissingCredentials)
		})
	}
}
