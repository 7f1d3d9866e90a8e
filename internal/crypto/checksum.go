// this file contains functions to calculate SHA-256 checksums
//
// the gateway records a checksum of every submitted document in the request
// log so that an envelope in DocuSign can be matched to the exact document
// bytes that were sent, without logging the document itself.

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// CalculateSHA256Hex calculates the SHA-256 checksum of data and returns it as a hex string
func CalculateSHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CalculateSHA256FromBase64 decodes base64-encoded content and returns the
// SHA-256 checksum of the decoded bytes as a hex string.
//
// The checksum covers the binary document, not its base64 form, so it matches
// a checksum taken of the original file.
func CalculateSHA256FromBase64(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 content: %w", err)
	}
	return CalculateSHA256Hex(data), nil
}

// VerifyChecksum verifies that data matches the expected SHA-256 checksum
func VerifyChecksum(data []byte, expectedChecksum string) bool {
	return CalculateSHA256Hex(data) == expectedChecksum
}
