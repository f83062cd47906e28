package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", SafeString(nil))
	assert.Equal(t, "value", SafeString(StringPtr("value")))
}

func TestWebhookURLValidation(t *testing.T) {
	tests := []struct {
		url        string
		validURL   bool
		validHTTPS bool
	}{
		{"https://hooks.example.com/registry", true, true},
		{"https://hooks.example.com:8443/registry?client=1", true, true},
		{"http://localhost:9000/hook", true, false},
		{"ftp://files.example.com/hook", false, false},
		{"https://", false, false},
		{"hooks.example.com/registry", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.validURL, IsValidURL(tt.url))
			assert.Equal(t, tt.validHTTPS, IsHTTPSURL(tt.url))
		})
	}
}

func TestGenerateUUID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := GenerateUUID()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestGenerateSecureToken(t *testing.T) {
	secret, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{64}$`, secret)

	other, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)

	empty, err := GenerateSecureToken(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
