package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	first := HashString("payload", "key")
	second := HashString("payload", "key")

	assert.Equal(t, first, second, "same input and key must hash identically")
	assert.NotEqual(t, first, HashString("payload", "other-key"))
	assert.NotEqual(t, first, HashString("other-payload", "key"))
	assert.Len(t, first, 64, "hex-encoded HMAC-SHA256 is 64 characters")
}

func TestSecureCompare(t *testing.T) {
	signature := HashString("payload", "key")

	assert.True(t, SecureCompare(signature, HashString("payload", "key")))
	assert.False(t, SecureCompare(signature, HashString("payload", "other-key")))
	assert.False(t, SecureCompare("", signature))
}
