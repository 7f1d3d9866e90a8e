package crypto

import (
	"crypto/rsa"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

func TestRSAPublicKeyToJWK(t *testing.T) {

	// nil public key
	var publicKey *rsa.PublicKey
	_, err := RSAPublicKeyToJWK(publicKey, "kid-1")
	if err == nil {
		t.Fatalf("expected an error when passing nil public key, but got no error")
	}

	privateKey, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("Could not generate a RSA private Key %v", err)
	}

	// empty key ID
	_, err = RSAPublicKeyToJWK(&privateKey.PublicKey, "")
	if err == nil {
		t.Fatalf("expected an error when passing empty keyID, but got no error")
	}

	key, err := RSAPublicKeyToJWK(&privateKey.PublicKey, "kid-1")
	if err != nil {
		t.Fatalf("error converting RSA public key to JWK: %v", err)
	}

	// Test metadata is set correctly (keyID, alg, usage)
	gotKeyID, ok := key.KeyID()
	if !ok {
		t.Fatalf("KeyID not set in JWK")
	}
	if gotKeyID != "kid-1" {
		t.Errorf("KeyID = %q, want kid-1", gotKeyID)
	}

	alg, ok := key.Algorithm()
	if !ok {
		t.Fatalf("Algorithm not set in JWK")
	}
	expectedAlg := jwa.RS256()
	if alg.String() != expectedAlg.String() {
		t.Errorf("Algorithm mismatch: got %q, want %q", alg.String(), expectedAlg.String())
	}

	usage, ok := key.KeyUsage()
	if !ok {
		t.Fatalf("KeyUsage not set in JWK")
	}
	if usage != string(jwk.ForSignature) {
		t.Errorf("KeyUsage = %q, want %q", usage, jwk.ForSignature)
	}
}

func TestGenerateKeyIDFromRSAKey(t *testing.T) {
	key1, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}

	kid1, err := GenerateKeyIDFromRSAKey(&key1.PublicKey)
	if err != nil {
		t.Fatalf("GenerateKeyIDFromRSAKey() error = %v", err)
	}

	if len(kid1) != 16 {
		t.Errorf("key ID length = %d, want 16", len(kid1))
	}

	// deterministic for the same key
	again, err := GenerateKeyIDFromRSAKey(&key1.PublicKey)
	if err != nil {
		t.Fatalf("GenerateKeyIDFromRSAKey() error = %v", err)
	}
	if again != kid1 {
		t.Errorf("key ID is not deterministic: %q vs %q", kid1, again)
	}

	// different keys get different IDs
	key2, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate second test key: %v", err)
	}
	kid2, err := GenerateKeyIDFromRSAKey(&key2.PublicKey)
	if err != nil {
		t.Fatalf("GenerateKeyIDFromRSAKey() error = %v", err)
	}
	if kid2 == kid1 {
		t.Error("two different keys produced the same key ID")
	}

	// nil key
	if _, err := GenerateKeyIDFromRSAKey(nil); err == nil {
		t.Error("expected error for nil key, got nil")
	}
}

func TestSigningJWKSet(t *testing.T) {
	key, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}

	jwkSet, err := SigningJWKSet(key, "kid-1")
	if err != nil {
		t.Fatalf("SigningJWKSet() error = %v", err)
	}

	if jwkSet.Len() != 1 {
		t.Fatalf("JWK set has %d keys, want 1", jwkSet.Len())
	}

	jwkKey, ok := jwkSet.Key(0)
	if !ok {
		t.Fatal("failed to get key from JWK set")
	}

	// only the public part of the key may be published
	var raw any
	if err := jwk.Export(jwkKey, &raw); err != nil {
		t.Fatalf("failed to export key: %v", err)
	}
	if _, isPublic := raw.(*rsa.PublicKey); !isPublic {
		t.Errorf("JWK set key is %T, want *rsa.PublicKey", raw)
	}

	if _, err := SigningJWKSet(nil, "kid-1"); err == nil {
		t.Error("expected error for nil key, got nil")
	}
}

// save a public JWK file and confirm it parses as a JWK set with the expected key ID
func TestSaveRSAPublicKeyToJWKFile(t *testing.T) {
	key, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}

	tmpDir := t.TempDir()

	if err := SaveRSAPublicKeyToJWKFile(&key.PublicKey, "kid-1", tmpDir, "public.jwk"); err != nil {
		t.Fatalf("SaveRSAPublicKeyToJWKFile() error = %v", err)
	}

	jsonBytes, err := os.ReadFile(filepath.Join(tmpDir, "public.jwk"))
	if err != nil {
		t.Fatalf("failed to read JWK file: %v", err)
	}

	jwkSet, err := jwk.Parse(jsonBytes)
	if err != nil {
		t.Fatalf("failed to parse saved JWK set: %v", err)
	}
	if jwkSet.Len() != 1 {
		t.Fatalf("saved JWK set has %d keys, want 1", jwkSet.Len())
	}

	// the file must not contain private key material
	var parsed map[string]any
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("failed to unmarshal JWK file: %v", err)
	}
	keys := parsed["keys"].([]any)
	if _, hasPrivateExponent := keys[0].(map[string]any)["d"]; hasPrivateExponent {
		t.Error("public JWK file contains the private exponent")
	}
}
