package esign

import "testing"

func TestDeriveEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    Environment
	}{
		{"default demo base URL", "https://demo.docusign.net", EnvironmentDemo},
		{"demo with path", "https://demo.docusign.net/restapi", EnvironmentDemo},
		{"production na", "https://na3.docusign.net", EnvironmentProduction},
		{"production eu", "https://eu.docusign.net", EnvironmentProduction},
		// documents the substring match: "demo" anywhere in the URL selects the sandbox
		{"demo substring elsewhere", "https://api.demo-proxy.example.com", EnvironmentDemo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveEnvironment(tt.baseURL); got != tt.want {
				t.Errorf("DeriveEnvironment(%q) = %s, want %s", tt.baseURL, got, tt.want)
			}
		})
	}
}

func TestAuthServerHost(t *testing.T) {
	if got := AuthServerHost(EnvironmentDemo); got != "account-d.docusign.com" {
		t.Errorf("demo auth host = %s, want account-d.docusign.com", got)
	}
	if got := AuthServerHost(EnvironmentProduction); got != "account.docusign.com" {
		t.Errorf("production auth host = %s, want account.docusign.com", got)
	}
}

// the audience and the token endpoint must always agree - both come from
// AuthServerHost for whatever environment the base URL maps to
func TestEnvironmentAudienceConsistency(t *testing.T) {
	for _, baseURL := range []string{
		"https://demo.docusign.net",
		"https://na3.docusign.net",
		"https://eu.docusign.net",
	} {
		env := DeriveEnvironment(baseURL)
		host := AuthServerHost(env)
		if host != authHostDemo && host != authHostProduction {
			t.Errorf("base URL %q mapped to unknown auth host %q", baseURL, host)
		}
	}
}

func TestAssertionAudience(t *testing.T) {
	tests := []struct {
		name     string
		env      Environment
		override string
		want     string
	}{
		{"demo without override", EnvironmentDemo, "", "account-d.docusign.com"},
		{"production without override", EnvironmentProduction, "", "account.docusign.com"},
		{"override replaces the host", EnvironmentDemo, "http://127.0.0.1:9999", "127.0.0.1:9999"},
		{"unparseable override falls back", EnvironmentDemo, "://", "account-d.docusign.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssertionAudience(tt.env, tt.override); got != tt.want {
				t.Errorf("AssertionAudience(%s, %q) = %q, want %q", tt.env, tt.override, got, tt.want)
			}
		})
	}
}
