package crypto

import (
	"encoding/base64"
	"testing"
)

var testData = []byte("hello world")
var expectedChecksum = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestCalculateSHA256Hex(t *testing.T) {
	if got := CalculateSHA256Hex(testData); got != expectedChecksum {
		t.Errorf("CalculateSHA256Hex() = %v, want %v", got, expectedChecksum)
	}
}

func TestCalculateSHA256FromBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(testData)

	// the checksum must cover the decoded bytes, not the base64 form
	got, err := CalculateSHA256FromBase64(encoded)
	if err != nil {
		t.Fatalf("CalculateSHA256FromBase64() error = %v", err)
	}
	if got != expectedChecksum {
		t.Errorf("CalculateSHA256FromBase64() = %v, want %v", got, expectedChecksum)
	}

	// invalid base64 input
	if _, err := CalculateSHA256FromBase64("not valid base64!!!"); err == nil {
		t.Error("expected error for invalid base64, got nil")
	}
}

func TestVerifyChecksum(t *testing.T) {
	if !VerifyChecksum(testData, expectedChecksum) {
		t.Error("VerifyChecksum() should return true for valid checksum")
	}

	invalidChecksum := "0000000000000000000000000000000000000000000000000000000000000000"
	if VerifyChecksum(testData, invalidChecksum) {
		t.Error("VerifyChecksum() should return false for invalid checksum")
	}
}
