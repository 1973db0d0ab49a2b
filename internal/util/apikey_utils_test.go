package util

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	rawKey, keyHash, err := GenerateAPIKey()
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(rawKey)
	require.NoError(t, err, "raw key must be URL-safe base64")
	assert.Len(t, decoded, 32, "key must carry 32 bytes of entropy")

	expected := sha256.Sum256([]byte(rawKey))
	assert.Equal(t, fmt.Sprintf("%x", expected), keyHash)
	assert.NotContains(t, keyHash, rawKey)
}

func TestGenerateAPIKey_Unique(t *testing.T) {
	first, _, err := GenerateAPIKey()
	require.NoError(t, err)

	second, _, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashAPIKey_Deterministic(t *testing.T) {
	assert.Equal(t, HashAPIKey("some-key"), HashAPIKey("some-key"))
	assert.NotEqual(t, HashAPIKey("some-key"), HashAPIKey("other-key"))
}
