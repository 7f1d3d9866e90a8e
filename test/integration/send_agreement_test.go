//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/information-sharing-networks/esign-gateway/app/internal/esign"
)

// postAgreement submits a request body to POST /v1/agreements and returns the
// status code and raw response body.
func postAgreement(t *testing.T, agreementsURL, body string) (int, []byte) {
	t.Helper()

	resp, err := http.Post(agreementsURL, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("Failed to call agreements endpoint: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp.StatusCode, respBody
}

// audienceContains reports whether the aud claim names the given value.
// jwx encodes a single audience as either a string or a one-element array.
func audienceContains(claims map[string]any, want string) bool {
	switch aud := claims["aud"].(type) {
	case string:
		return aud == want
	case []any:
		for _, v := range aud {
			if s, ok := v.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

// TestSendAgreement does an end-2-end test of the POST /v1/agreements endpoint
// against the DocuSign stub.
func TestSendAgreement(t *testing.T) {
	testEnv := startInProcessServer(t)
	defer testEnv.shutdown()

	agreementsURL := testEnv.baseURL + "/v1/agreements"

	// "test document"
	requestBody := `{
		"docBase64": "dGVzdCBkb2N1bWVudA==",
		"fileName": "consulting-agreement.docx",
		"clientName": "Jane Doe",
		"clientEmail": "jane@example.com",
		"signerMessage": "Please review and sign by Friday."
	}`

	t.Run("delivers a signed agreement end to end", func(t *testing.T) {
		testEnv.docusign.reset()

		status, body := postAgreement(t, agreementsURL, requestBody)
		if status != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", status, body)
		}

		var agreement esign.AgreementResponse
		if err := json.Unmarshal(body, &agreement); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if !agreement.Success {
			t.Errorf("Expected success=true, got false: %s", agreement.Message)
		}
		if agreement.EnvelopeID != testEnv.docusign.envelopeID() {
			t.Errorf("Expected envelope id %q, got %q", testEnv.docusign.envelopeID(), agreement.EnvelopeID)
		}
		if agreement.Status != "sent" {
			t.Errorf("Expected status %q, got %q", "sent", agreement.Status)
		}
		if agreement.Message != "Agreement sent to jane@example.com" {
			t.Errorf("Unexpected message: %q", agreement.Message)
		}

		authCalls, envelopeCalls := testEnv.docusign.counters()
		if authCalls != 1 {
			t.Errorf("Expected 1 token exchange, got %d", authCalls)
		}
		if envelopeCalls != 1 {
			t.Errorf("Expected 1 envelope submission, got %d", envelopeCalls)
		}

		// the stub verified the assertion signature; check the claims
		claims := testEnv.docusign.assertionClaims(t)
		if claims["iss"] != testIntegrationKey {
			t.Errorf("Expected iss %q, got %v", testIntegrationKey, claims["iss"])
		}
		if claims["sub"] != testUserID {
			t.Errorf("Expected sub %q, got %v", testUserID, claims["sub"])
		}
		if claims["scope"] != esign.AssertionScope {
			t.Errorf("Expected scope %q, got %v", esign.AssertionScope, claims["scope"])
		}

		// the audience must name the host the exchange was sent to (the stub)
		stubHost := strings.TrimPrefix(testEnv.docusign.url(), "http://")
		if !audienceContains(claims, stubHost) {
			t.Errorf("Expected aud to contain %q, got %v", stubHost, claims["aud"])
		}

		// check the envelope that reached DocuSign
		envelope := testEnv.docusign.envelope()
		if envelope == nil {
			t.Fatal("Stub did not record an envelope")
		}
		if envelope.Status != "sent" {
			t.Errorf("Expected envelope status %q, got %q", "sent", envelope.Status)
		}
		if len(envelope.Documents) != 1 || len(envelope.Recipients.Signers) != 1 {
			t.Fatalf("Expected 1 document and 1 signer, got %d and %d",
				len(envelope.Documents), len(envelope.Recipients.Signers))
		}
		if envelope.Documents[0].Name != "consulting-agreement.docx" {
			t.Errorf("Expected document name %q, got %q", "consulting-agreement.docx", envelope.Documents[0].Name)
		}
		if envelope.Documents[0].DocumentBase64 != "dGVzdCBkb2N1bWVudA==" {
			t.Errorf("Document base64 was not passed through untouched: %q", envelope.Documents[0].DocumentBase64)
		}

		signer := envelope.Recipients.Signers[0]
		if signer.Email != "jane@example.com" {
			t.Errorf("Expected signer email %q, got %q", "jane@example.com", signer.Email)
		}
		if signer.Name != "Jane Doe" {
			t.Errorf("Expected signer name %q, got %q", "Jane Doe", signer.Name)
		}
		if envelope.EmailBlurb != "Please review and sign by Friday." {
			t.Errorf("Expected the signer message as the email blurb, got %q", envelope.EmailBlurb)
		}
		if len(signer.Tabs.SignHereTabs) != 1 || signer.Tabs.SignHereTabs[0].AnchorString != "Signature: ___" {
			t.Errorf("Expected a single anchored signature tab, got %+v", signer.Tabs)
		}

		t.Log("✅ Agreement delivered end to end")
	})

	t.Run("reports token exchange failures as server errors", func(t *testing.T) {
		testEnv.docusign.reset()
		testEnv.docusign.failAuth(http.StatusUnauthorized)

		status, body := postAgreement(t, agreementsURL, requestBody)
		if status != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d: %s", status, body)
		}

		var agreement esign.AgreementResponse
		if err := json.Unmarshal(body, &agreement); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if agreement.Success {
			t.Error("Expected success=false")
		}
		if !strings.Contains(agreement.Message, "Auth failed with status 401") {
			t.Errorf("Expected the DocuSign auth status in the message, got %q", agreement.Message)
		}

		// the envelope endpoint must not be called when the exchange fails
		authCalls, envelopeCalls := testEnv.docusign.counters()
		if authCalls != 1 {
			t.Errorf("Expected 1 token exchange, got %d", authCalls)
		}
		if envelopeCalls != 0 {
			t.Errorf("Expected no envelope submissions, got %d", envelopeCalls)
		}
	})

	t.Run("reports envelope submission failures as server errors", func(t *testing.T) {
		testEnv.docusign.reset()
		testEnv.docusign.failEnvelopes(http.StatusBadRequest)

		status, body := postAgreement(t, agreementsURL, requestBody)
		if status != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d: %s", status, body)
		}

		var agreement esign.AgreementResponse
		if err := json.Unmarshal(body, &agreement); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if !strings.Contains(agreement.Message, "Envelope creation failed with status 400") {
			t.Errorf("Expected the DocuSign envelope status in the message, got %q", agreement.Message)
		}

		authCalls, envelopeCalls := testEnv.docusign.counters()
		if authCalls != 1 || envelopeCalls != 1 {
			t.Errorf("Expected 1 token exchange and 1 envelope submission, got %d and %d", authCalls, envelopeCalls)
		}
	})

	t.Run("rejects requests with missing fields", func(t *testing.T) {
		testEnv.docusign.reset()

		status, body := postAgreement(t, agreementsURL, `{"clientName": "Jane Doe"}`)
		if status != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d: %s", status, body)
		}

		var agreement esign.AgreementResponse
		if err := json.Unmarshal(body, &agreement); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if agreement.Message != "Missing required fields: docBase64, clientEmail" {
			t.Errorf("Unexpected message: %q", agreement.Message)
		}

		// validation failures must not reach DocuSign
		authCalls, envelopeCalls := testEnv.docusign.counters()
		if authCalls != 0 || envelopeCalls != 0 {
			t.Errorf("Expected no DocuSign calls, got %d token exchanges and %d envelope submissions", authCalls, envelopeCalls)
		}
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, agreementsURL, nil)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Failed to call agreements endpoint: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("Expected status 405, got %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}

		var agreement esign.AgreementResponse
		if err := json.Unmarshal(body, &agreement); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if agreement.Message != "Method not allowed" {
			t.Errorf("Unexpected message: %q", agreement.Message)
		}
	})

	t.Run("answers CORS pre-flight requests", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, agreementsURL, nil)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}
		req.Header.Set("Origin", "https://app.example.com")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Failed to call agreements endpoint: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}
		if len(body) != 0 {
			t.Errorf("Expected an empty pre-flight body, got %q", body)
		}

		headers := map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "POST, OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type",
		}
		for header, want := range headers {
			if got := resp.Header.Get(header); got != want {
				t.Errorf("Expected %s %q, got %q", header, want, got)
			}
		}
	})
}
