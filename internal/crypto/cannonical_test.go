package crypto

import "testing"

// test that cannonical rejects invalid json

func TestCanonicalizeJSON(t *testing.T) {
	// invalid json
	jsonData := []byte(`{"test": "value"`)
	_, err := CanonicalizeJSON(jsonData)
	if err == nil {
		t.Fatalf("CanonicalizeJSON() expected error, got nil")
	}
	t.Logf("CanonicalizeJSON() correctly rejected invalid JSON: %v", err)
}

// equivalent JSON documents must produce the same checksum regardless of key
// order and whitespace
func TestCanonicalChecksum(t *testing.T) {
	doc1 := []byte(`{"clientName":"Jane Doe","status":"sent"}`)
	doc2 := []byte(`{
		"status": "sent",
		"clientName": "Jane Doe"
	}`)

	sum1, err := CanonicalChecksum(doc1)
	if err != nil {
		t.Fatalf("CanonicalChecksum() error = %v", err)
	}
	sum2, err := CanonicalChecksum(doc2)
	if err != nil {
		t.Fatalf("CanonicalChecksum() error = %v", err)
	}

	if sum1 != sum2 {
		t.Errorf("checksums differ for equivalent JSON: %s vs %s", sum1, sum2)
	}

	if len(sum1) != 64 {
		t.Errorf("checksum length = %d, want 64 hex chars", len(sum1))
	}

	if _, err := CanonicalChecksum([]byte(`{"broken":`)); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}
