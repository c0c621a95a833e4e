package helpers

import (
	"crypto/sha256"
	"fmt"
)

// Sha256 calculates the SHA256 hash of the input and returns its hex representation.
func Sha256(input []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(input))
}
