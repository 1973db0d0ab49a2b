package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const apiKeyByteLength = 32

func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateAPIKey produces a URL-safe bearer token and its SHA-256 hex digest.
// The raw token is handed to the caller exactly once; only the digest is ever
// persisted.
func GenerateAPIKey() (rawKey string, keyHash string, err error) {
	b, err := generateRandomBytes(apiKeyByteLength)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate key material: %w", err)
	}

	rawKey = base64.RawURLEncoding.EncodeToString(b)
	keyHash = HashAPIKey(rawKey)

	return rawKey, keyHash, nil
}

func HashAPIKey(rawKey string) string {
	hashBytes := sha256.Sum256([]byte(rawKey))
	return fmt.Sprintf("%x", hashBytes)
}
