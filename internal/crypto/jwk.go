// JWK (JSON Web Key) handling for the esign gateway
//
// these functions convert raw RSA public keys to JWK format
// Reference: https://datatracker.ietf.org/doc/html/rfc7517 (JSON Web Key standard)
//
// they are used by the server to publish the configured signing key via
// /.well-known/jwks.json, and by the keygen CLI to write JWK files for
// distribution.

package crypto

import (
	"crypto"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// RSAPublicKeyToJWK converts a RSA public key to JWK format
func RSAPublicKeyToJWK(publicKey *rsa.PublicKey, keyID string) (jwk.Key, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("public key is nil")
	}
	if keyID == "" {
		return nil, fmt.Errorf("keyID is required")
	}

	key, err := jwk.Import(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK from RSA public key: %w", err)
	}

	if err := key.Set(jwk.KeyIDKey, keyID); err != nil {
		return nil, fmt.Errorf("failed to set key ID: %w", err)
	}

	if err := key.Set(jwk.AlgorithmKey, jwa.RS256()); err != nil {
		return nil, fmt.Errorf("failed to set algorithm: %w", err)
	}

	if err := key.Set(jwk.KeyUsageKey, jwk.ForSignature); err != nil {
		return nil, fmt.Errorf("failed to set key usage: %w", err)
	}

	return key, nil
}

// SigningJWKSet builds the JWK set published at /.well-known/jwks.json from
// the configured signing key. Only the public part of the key is included.
func SigningJWKSet(privateKey *rsa.PrivateKey, keyID string) (jwk.Set, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key is nil")
	}

	jwkKey, err := RSAPublicKeyToJWK(&privateKey.PublicKey, keyID)
	if err != nil {
		return nil, err
	}

	jwkSet := jwk.NewSet()
	if err := jwkSet.AddKey(jwkKey); err != nil {
		return nil, fmt.Errorf("failed to add key to JWK set: %w", err)
	}

	return jwkSet, nil
}

// SaveRSAPublicKeyToJWKFile saves an RSA public key to a JWK file
//
// Parameters:
//   - baseDir: The base directory to scope file access (e.g., "./keys")
//   - filename: The filename within the base directory (e.g., "public.jwk")
func SaveRSAPublicKeyToJWKFile(publicKey *rsa.PublicKey, keyID, baseDir, filename string) error {
	jwkKey, err := RSAPublicKeyToJWK(publicKey, keyID)
	if err != nil {
		return fmt.Errorf("failed to create JWK: %w", err)
	}

	jwkSet := jwk.NewSet()
	if err := jwkSet.AddKey(jwkKey); err != nil {
		return fmt.Errorf("failed to add key to JWK set: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(jwkSet, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JWK set: %w", err)
	}

	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return fmt.Errorf("failed to open root directory %s: %w", baseDir, err)
	}
	defer root.Close()

	if err := root.WriteFile(filename, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// GenerateKeyIDFromRSAKey generates a key ID from an RSA public key using the
// SHA-256 JWK thumbprint (RFC 7638).
// Returns the first 16 characters of the hex-encoded thumbprint.
func GenerateKeyIDFromRSAKey(publicKey *rsa.PublicKey) (string, error) {
	if publicKey == nil {
		return "", fmt.Errorf("public key is nil")
	}

	// Import to JWK to calculate thumbprint
	jwkKey, err := jwk.Import(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to import key: %w", err)
	}

	thumbprint, err := jwkKey.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("failed to generate thumbprint: %w", err)
	}

	return fmt.Sprintf("%x", thumbprint)[:16], nil
}
