//go:build integration

package integration

// Stub DocuSign server.
//
// The stub implements the two endpoints the gateway calls - the OAuth token
// endpoint and the envelope creation endpoint - and verifies each request the
// way DocuSign would: the token exchange checks the grant type and the RS256
// signature on the assertion, and the envelope call requires the bearer token
// issued by the preceding exchange.

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jws"

	"github.com/information-sharing-networks/esign-gateway/app/internal/esign"
	"github.com/information-sharing-networks/esign-gateway/app/internal/services"
)

// stubDocuSign records the calls the gateway makes so tests can assert on the
// outbound traffic. authStatus / envelopeStatus force a failure response from
// the corresponding endpoint (zero means behave normally).
type stubDocuSign struct {
	server    *httptest.Server
	publicKey *rsa.PublicKey
	accountID string

	mu             sync.Mutex
	authStatus     int
	envelopeStatus int

	accessToken   string
	authCalls     int
	envelopeCalls int

	lastAssertionClaims []byte
	lastEnvelope        *esign.EnvelopeDefinition
	lastEnvelopeID      string
}

// newStubDocuSign starts the stub on a local port. The server is shut down
// automatically when the test completes.
func newStubDocuSign(t *testing.T, publicKey *rsa.PublicKey, accountID string) *stubDocuSign {
	t.Helper()

	stub := &stubDocuSign{
		publicKey: publicKey,
		accountID: accountID,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", stub.handleToken)
	mux.HandleFunc(fmt.Sprintf("POST /restapi/v2.1/accounts/%s/envelopes", accountID), stub.handleCreateEnvelope)

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)

	return stub
}

func (s *stubDocuSign) url() string {
	return s.server.URL
}

// failAuth makes the next token exchanges fail with the given status.
func (s *stubDocuSign) failAuth(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authStatus = status
}

// failEnvelopes makes the next envelope submissions fail with the given status.
func (s *stubDocuSign) failEnvelopes(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopeStatus = status
}

// reset clears the failure overrides and call counters between test cases.
func (s *stubDocuSign) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authStatus = 0
	s.envelopeStatus = 0
	s.authCalls = 0
	s.envelopeCalls = 0
	s.lastAssertionClaims = nil
	s.lastEnvelope = nil
	s.lastEnvelopeID = ""
}

func (s *stubDocuSign) counters() (authCalls, envelopeCalls int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authCalls, s.envelopeCalls
}

// assertionClaims returns the decoded claim set of the last verified assertion.
func (s *stubDocuSign) assertionClaims(t *testing.T) map[string]any {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastAssertionClaims == nil {
		t.Fatal("stub has not received an assertion")
	}

	var claims map[string]any
	if err := json.Unmarshal(s.lastAssertionClaims, &claims); err != nil {
		t.Fatalf("Failed to unmarshal assertion claims: %v", err)
	}
	return claims
}

func (s *stubDocuSign) envelope() *esign.EnvelopeDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEnvelope
}

func (s *stubDocuSign) envelopeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEnvelopeID
}

// handleToken implements POST /oauth/token for the JWT-bearer grant.
func (s *stubDocuSign) handleToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authCalls++

	if s.authStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.authStatus)
		fmt.Fprint(w, `{"error":"consent_required"}`)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	if grantType := r.FormValue("grant_type"); grantType != services.JWTBearerGrantType {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `{"error":"unsupported_grant_type","error_description":%q}`, grantType)
		return
	}

	// verify the assertion signature against the registered public key,
	// as DocuSign does for a configured integration
	claims, err := jws.Verify([]byte(r.FormValue("assertion")), jws.WithKey(jwa.RS256(), s.publicKey))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
		return
	}
	s.lastAssertionClaims = claims

	s.accessToken = uuid.NewString()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"access_token": s.accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	}); err != nil {
		http.Error(w, "failed to encode token response", http.StatusInternalServerError)
	}
}

// handleCreateEnvelope implements POST /restapi/v2.1/accounts/{accountId}/envelopes.
func (s *stubDocuSign) handleCreateEnvelope(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.envelopeCalls++

	if s.envelopeStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.envelopeStatus)
		fmt.Fprint(w, `{"errorCode":"INVALID_REQUEST_BODY","message":"The request body is missing or improperly formatted."}`)
		return
	}

	if s.accessToken == "" || r.Header.Get("Authorization") != "Bearer "+s.accessToken {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errorCode":"AUTHORIZATION_INVALID_TOKEN","message":"The access token provided is invalid."}`)
		return
	}

	var def esign.EnvelopeDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errorCode":"INVALID_REQUEST_BODY","message":"The request body could not be parsed."}`)
		return
	}

	s.lastEnvelope = &def
	s.lastEnvelopeID = uuid.NewString()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"envelopeId": s.lastEnvelopeID,
		"status":     "sent",
		"uri":        "/envelopes/" + s.lastEnvelopeID,
	}); err != nil {
		http.Error(w, "failed to encode envelope response", http.StatusInternalServerError)
	}
}
