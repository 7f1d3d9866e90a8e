// env.go selects between the DocuSign demo and production environments.
//
// DocuSign runs separate OAuth authorization servers for the two
// environments, and a token minted by one is useless against the other. The
// environment is derived from the configured API base URL so the assertion
// audience, the token endpoint and the envelope endpoint always agree.
package esign

import (
	"net/url"
	"strings"
)

// Environment identifies a DocuSign environment.
type Environment string

const (
	// EnvironmentDemo is the DocuSign developer sandbox.
	EnvironmentDemo Environment = "demo"

	// EnvironmentProduction is live DocuSign.
	EnvironmentProduction Environment = "production"
)

const (
	authHostProduction = "account.docusign.com"
	authHostDemo       = "account-d.docusign.com"
)

// DeriveEnvironment determines which DocuSign environment an API base URL
// belongs to. Any URL containing the substring "demo" is treated as the
// developer sandbox (the default base URL is https://demo.docusign.net).
//
// TODO: match on the exact host instead of the substring - a production
// base URL that happens to contain "demo" (e.g. a CNAME like
// eu-demos.example.com proxying live DocuSign) would be sent to the sandbox
// auth server and fail the token exchange.
func DeriveEnvironment(baseURL string) Environment {
	if strings.Contains(baseURL, "demo") {
		return EnvironmentDemo
	}
	return EnvironmentProduction
}

// AuthServerHost returns the OAuth authorization server host for an
// environment.
//
// The host doubles as the assertion's aud claim, so the audience and the
// token endpoint can never disagree.
func AuthServerHost(env Environment) string {
	if env == EnvironmentDemo {
		return authHostDemo
	}
	return authHostProduction
}

// AssertionAudience returns the aud claim for an assertion aimed at the
// environment's auth server.
//
// authBaseURLOverride, when set, replaces the derived host - the audience
// must always name the host the token exchange is sent to, including when
// the exchange is pointed at a stub server.
func AssertionAudience(env Environment, authBaseURLOverride string) string {
	if authBaseURLOverride != "" {
		if u, err := url.Parse(authBaseURLOverride); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return AuthServerHost(env)
}
