//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"

	commonhandlers "github.com/information-sharing-networks/esign-gateway/app/internal/server/handlers"
)

// TestCommonEndpoints checks the operational endpoints every deployment of the
// gateway exposes alongside the agreements API.
func TestCommonEndpoints(t *testing.T) {
	testEnv := startInProcessServer(t)
	defer testEnv.shutdown()

	t.Run("liveness", func(t *testing.T) {
		resp, err := http.Get(testEnv.baseURL + "/health/live")
		if err != nil {
			t.Fatalf("Failed to call health endpoint: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}
		if string(body) != "OK" {
			t.Errorf("Expected body %q, got %q", "OK", body)
		}

		// all responses advertise the request size limit
		want := strconv.FormatInt(testEnv.cfg.MaxRequestBodySize, 10)
		if got := resp.Header.Get("X-Max-Request-Size"); got != want {
			t.Errorf("Expected X-Max-Request-Size %q, got %q", want, got)
		}
	})

	t.Run("readiness", func(t *testing.T) {
		resp, err := http.Get(testEnv.baseURL + "/ready")
		if err != nil {
			t.Fatalf("Failed to call readiness endpoint: %v", err)
		}
		defer resp.Body.Close()

		// the test server always has the DocuSign credentials configured
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var status map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if status["status"] != "ready" {
			t.Errorf("Expected status %q, got %q", "ready", status["status"])
		}
	})

	t.Run("version", func(t *testing.T) {
		resp, err := http.Get(testEnv.baseURL + "/version")
		if err != nil {
			t.Fatalf("Failed to call version endpoint: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var version commonhandlers.VersionResponse
		if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if version.Service != "esign-gateway" {
			t.Errorf("Expected service %q, got %q", "esign-gateway", version.Service)
		}
		if version.Version == "" {
			t.Error("Expected a version string")
		}
	})

	t.Run("jwks", func(t *testing.T) {
		resp, err := http.Get(testEnv.baseURL + "/.well-known/jwks.json")
		if err != nil {
			t.Fatalf("Failed to call JWKS endpoint: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var jwks struct {
			Keys []map[string]any `json:"keys"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
			t.Fatalf("Failed to decode JWK set: %v", err)
		}

		// the signing key is configured, so the set holds its public half
		if len(jwks.Keys) != 1 {
			t.Fatalf("Expected 1 key in the JWK set, got %d", len(jwks.Keys))
		}

		key := jwks.Keys[0]
		if key["kty"] != "RSA" {
			t.Errorf("Expected kty RSA, got %v", key["kty"])
		}
		if key["alg"] != "RS256" {
			t.Errorf("Expected alg RS256, got %v", key["alg"])
		}
		if key["use"] != "sig" {
			t.Errorf("Expected use sig, got %v", key["use"])
		}
		if key["kid"] == "" || key["kid"] == nil {
			t.Error("Expected a key id")
		}
		if _, ok := key["d"]; ok {
			t.Error("JWK set must not contain the private exponent")
		}
	})
}
