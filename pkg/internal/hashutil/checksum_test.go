package hashutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	sum := Checksum([]byte("Hello, World!\n"))

	assert.True(t, strings.HasPrefix(sum, "sha256:"))
	assert.Len(t, sum, 71) // "sha256:" + 64 hex chars

	// Deterministic across calls
	assert.Equal(t, sum, Checksum([]byte("Hello, World!\n")))
}

func TestShortHash(t *testing.T) {
	h := ShortHash([]byte("content"), 12)
	assert.Len(t, h, 12)
	assert.Equal(t, h, ShortHash([]byte("content"), 12))
	assert.NotEqual(t, h, ShortHash([]byte("другой"), 12))

	assert.Len(t, ShortHash([]byte("x"), 100), 64, "n is capped at digest length")
}
