package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8080"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	AllowedOrigins        []string      `env:"ALLOWED_ORIGINS,separator=|"`
	MaxRequestBodySize    int64         `env:"MAX_REQUEST_BODY_SIZE,default=10485760"`

	// DocuSign settings.
	//
	// The credentials are deliberately not marked required: a missing value
	// is reported per request as a misconfiguration error (500) so that the
	// common endpoints (health, version, docs) stay available on a
	// misconfigured deployment.
	DocuSignIntegrationKey string `env:"DOCUSIGN_INTEGRATION_KEY"`
	DocuSignUserID         string `env:"DOCUSIGN_USER_ID"`
	DocuSignAccountID      string `env:"DOCUSIGN_ACCOUNT_ID"`
	DocuSignPrivateKey     string `env:"DOCUSIGN_PRIVATE_KEY"`
	DocuSignBaseURL        string `env:"DOCUSIGN_BASE_URL,default=https://demo.docusign.net"`

	// DocuSignAuthBaseURL overrides the OAuth server URL that is otherwise
	// derived from DOCUSIGN_BASE_URL. Used by the integration tests to point
	// the gateway at a stub server.
	DocuSignAuthBaseURL string `env:"DOCUSIGN_AUTH_BASE_URL"`

	// outbound HTTP client timeout for DocuSign calls (token + envelope)
	DocuSignHTTPTimeout time.Duration `env:"DOCUSIGN_HTTP_TIMEOUT,default=30s"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

// docuSignCredentialVars are the environment variables that must be set
// before agreements can be sent.
var docuSignCredentialVars = []struct {
	name  string
	value func(*ServerEnvironment) string
}{
	{"DOCUSIGN_INTEGRATION_KEY", func(c *ServerEnvironment) string { return c.DocuSignIntegrationKey }},
	{"DOCUSIGN_USER_ID", func(c *ServerEnvironment) string { return c.DocuSignUserID }},
	{"DOCUSIGN_ACCOUNT_ID", func(c *ServerEnvironment) string { return c.DocuSignAccountID }},
	{"DOCUSIGN_PRIVATE_KEY", func(c *ServerEnvironment) string { return c.DocuSignPrivateKey }},
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig checks the env variables that must be valid at startup
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if cfg.MaxRequestBodySize < 1 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be at least 1 byte")
	}

	if err := validateBaseURL("DOCUSIGN_BASE_URL", cfg.DocuSignBaseURL); err != nil {
		return err
	}
	if cfg.DocuSignAuthBaseURL != "" {
		if err := validateBaseURL("DOCUSIGN_AUTH_BASE_URL", cfg.DocuSignAuthBaseURL); err != nil {
			return err
		}
	}

	return nil
}

func validateBaseURL(name, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s: must include scheme and host, got %q", name, value)
	}
	return nil
}

// MissingDocuSignVars returns the names of the DocuSign credential variables
// that are not set.
//
// The names are for server-side logging only - clients get a generic
// misconfiguration message that never identifies the missing variable.
func (cfg *ServerEnvironment) MissingDocuSignVars() []string {
	var missing []string
	for _, v := range docuSignCredentialVars {
		if v.value(cfg) == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

// DocuSignPrivateKeyPEM returns the configured private key with literal \n
// escape sequences converted to newlines.
//
// Keys are commonly stored as single-line environment values with the PEM
// line breaks escaped; this restores the multi-line PEM form.
func (cfg *ServerEnvironment) DocuSignPrivateKeyPEM() string {
	return strings.ReplaceAll(cfg.DocuSignPrivateKey, `\n`, "\n")
}
