// JSON payloads are canonicalized per RFC 8785 before hashing so that the
// checksum of a logged payload is stable regardless of map ordering or
// whitespace in the marshalled form.
// this implementation uses the gowebpki/jcs library to perform the canonicalization
package crypto

import (
	"fmt"

	"github.com/gowebpki/jcs"
)

// CanonicalizeJSON converts JSON to canonical form per RFC 8785
// This ensures consistent hashing of JSON documents
//
// If the input is not valid JSON, an error is returned (handled by jcs library).
func CanonicalizeJSON(jsonData []byte) ([]byte, error) {
	return jcs.Transform(jsonData)
}

// CanonicalChecksum canonicalizes a JSON document and returns the SHA-256
// checksum of the canonical form as a hex string.
func CanonicalChecksum(jsonData []byte) (string, error) {
	canonical, err := CanonicalizeJSON(jsonData)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize JSON: %w", err)
	}
	return CalculateSHA256Hex(canonical), nil
}
