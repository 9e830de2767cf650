package hashutil

import (
	"crypto/sha256"
	"fmt"
)

// Checksum calculates the SHA256 checksum of a byte slice
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// ShortHash returns the first n hex characters of the SHA256 of data.
// Asset file names use it so identical content always maps to the same
// name.
func ShortHash(data []byte, n int) string {
	sum := fmt.Sprintf("%x", sha256.Sum256(data))
	if n > len(sum) {
		n = len(sum)
	}
	return sum[:n]
}
