// docusign.go implements the HTTP clients for the two DocuSign calls the
// gateway makes per agreement request:
//
//	POST https://{authServerHost}/oauth/token                                 (JWT-bearer token exchange)
//	POST {baseURL}/restapi/v2.1/accounts/{accountId}/envelopes               (envelope submission)
//
// Neither client retries: a failed agreement request fails as a whole and
// the caller decides whether to resubmit. Tokens are not cached - every
// request performs its own exchange.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/information-sharing-networks/esign-gateway/app/internal/config"
	"github.com/information-sharing-networks/esign-gateway/app/internal/esign"
)

// JWTBearerGrantType is the OAuth 2.0 grant type for JWT-bearer assertions (RFC 7523).
const JWTBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// TokenExchanger exchanges a signed JWT-bearer assertion for an access token.
type TokenExchanger interface {
	// ExchangeAssertion posts the assertion to the token endpoint for the
	// given environment and returns the parsed token response.
	// Returns an esign auth error carrying the status code and body text
	// when DocuSign rejects the exchange.
	ExchangeAssertion(ctx context.Context, env esign.Environment, assertion string) (*esign.TokenResponse, error)
}

// EnvelopeSubmitter submits envelope definitions to the eSignature REST API.
type EnvelopeSubmitter interface {
	// CreateEnvelope posts the envelope definition using the bearer token
	// and returns the parsed creation response.
	// Returns an esign submission error carrying the status code and body
	// text when DocuSign rejects the envelope.
	CreateEnvelope(ctx context.Context, accessToken string, def *esign.EnvelopeDefinition) (*esign.EnvelopeCreateResponse, error)
}

// AuthClient calls the DocuSign OAuth token endpoint.
//
// The endpoint host is derived from the environment so it always matches
// the assertion's audience. The configured auth base URL override takes
// precedence when set (integration tests use this to point the client at a
// stub server).
type AuthClient struct {
	authBaseURLOverride string
	httpClient          *http.Client
}

// NewAuthClient creates the token endpoint client from configuration.
func NewAuthClient(cfg *config.ServerEnvironment) *AuthClient {
	return &AuthClient{
		authBaseURLOverride: cfg.DocuSignAuthBaseURL,
		httpClient:          &http.Client{Timeout: cfg.DocuSignHTTPTimeout},
	}
}

// tokenEndpoint returns the token URL for the environment.
func (c *AuthClient) tokenEndpoint(env esign.Environment) string {
	if c.authBaseURLOverride != "" {
		return strings.TrimSuffix(c.authBaseURLOverride, "/") + "/oauth/token"
	}
	return "https://" + esign.AuthServerHost(env) + "/oauth/token"
}

// ExchangeAssertion performs the JWT-bearer grant exchange.
func (c *AuthClient) ExchangeAssertion(ctx context.Context, env esign.Environment, assertion string) (*esign.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", JWTBearerGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenEndpoint(env), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, esign.WrapAuthError(err, "failed to create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Execute request
	// #nosec G704 -- False positive: the URL is derived from server config, not user input.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, esign.WrapAuthError(err, "failed to call token endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, esign.NewAuthError(fmt.Sprintf("Auth failed with status %d: %s", resp.StatusCode, string(body)))
	}

	var token esign.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, esign.WrapAuthError(err, "failed to decode token response")
	}
	if token.AccessToken == "" {
		return nil, esign.NewAuthError("token response did not contain an access token")
	}

	return &token, nil
}

// EnvelopeClient calls the eSignature envelope-creation endpoint.
type EnvelopeClient struct {
	baseURL    string
	accountID  string
	httpClient *http.Client
}

// NewEnvelopeClient creates the envelope endpoint client from configuration.
func NewEnvelopeClient(cfg *config.ServerEnvironment) *EnvelopeClient {
	return &EnvelopeClient{
		baseURL:    strings.TrimSuffix(cfg.DocuSignBaseURL, "/"),
		accountID:  cfg.DocuSignAccountID,
		httpClient: &http.Client{Timeout: cfg.DocuSignHTTPTimeout},
	}
}

// CreateEnvelope submits the envelope definition. The envelope is
// dispatched to the signer immediately (definition status is "sent").
func (c *EnvelopeClient) CreateEnvelope(ctx context.Context, accessToken string, def *esign.EnvelopeDefinition) (*esign.EnvelopeCreateResponse, error) {
	payload, err := json.Marshal(def)
	if err != nil {
		return nil, esign.WrapSubmissionError(err, "failed to marshal envelope definition")
	}

	endpoint := fmt.Sprintf("%s/restapi/v2.1/accounts/%s/envelopes", c.baseURL, c.accountID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, esign.WrapSubmissionError(err, "failed to create envelope request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	// Execute request
	// #nosec G704 -- False positive: the URL is derived from server config, not user input.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, esign.WrapSubmissionError(err, "failed to call envelope endpoint")
	}
	defer resp.Body.Close()

	// DocuSign returns 201 Created; accept any 2xx
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, esign.NewSubmissionError(fmt.Sprintf("Envelope creation failed with status %d: %s", resp.StatusCode, string(body)))
	}

	var created esign.EnvelopeCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, esign.WrapSubmissionError(err, "failed to decode envelope response")
	}

	return &created, nil
}
