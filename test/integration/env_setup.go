//go:build integration

package integration

// Test environment setup and server lifecycle management.
//
// Each test starts the gateway HTTP server in-process and points it at a stub
// DocuSign server (DOCUSIGN_BASE_URL and DOCUSIGN_AUTH_BASE_URL both resolve
// to the stub). A fresh RSA signing key is generated per test and handed to
// the server the way a deployment would: as a single-line environment value
// with escaped newlines.
//
// By default the server logs are not included in the test output, you can enable them with:
//
//	ENABLE_SERVER_LOGS=true go test -tags=integration -v ./test/integration
//

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/information-sharing-networks/esign-gateway/app/internal/config"
	"github.com/information-sharing-networks/esign-gateway/app/internal/crypto"
	"github.com/information-sharing-networks/esign-gateway/app/internal/logger"
	"github.com/information-sharing-networks/esign-gateway/app/internal/server"
	"github.com/information-sharing-networks/esign-gateway/app/internal/services"
)

const (
	testIntegrationKey = "test-integration-key"
	testUserID         = "test-user-1"
	testAccountID      = "test-account-1"
)

// testEnv provides access to the running gateway and the DocuSign stub
type testEnv struct {
	baseURL  string
	cfg      *config.ServerEnvironment
	docusign *stubDocuSign
	shutdown func()
}

// startInProcessServer starts the gateway in-process for testing - returns the
// base URL for the API, the DocuSign stub and a shutdown function
func startInProcessServer(t *testing.T) *testEnv {
	t.Helper()

	testEnv := &testEnv{}

	t.Log("Starting in-process server...")

	// server config
	var (
		ctx         = context.Background()
		host        = "localhost"
		port        = findFreePort(t)
		environment = "test"
		logLevel    = logger.ParseLogLevel("none")
	)

	enableServerLogs := false
	if os.Getenv("ENABLE_SERVER_LOGS") == "true" {
		enableServerLogs = true
		logLevel = logger.ParseLogLevel("debug")
	}

	// signing key for the outbound assertions - the stub verifies signatures
	// against the matching public key
	privateKey, err := crypto.GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("Failed to generate signing key: %v", err)
	}

	pemBytes, err := crypto.EncodeRSAPrivateKeyToPEM(privateKey)
	if err != nil {
		t.Fatalf("Failed to encode signing key: %v", err)
	}

	// store the key the way deployment tooling usually does: one line with
	// escaped newlines (the config layer restores the real newlines)
	escapedKey := strings.ReplaceAll(string(pemBytes), "\n", `\n`)

	testEnv.docusign = newStubDocuSign(t, &privateKey.PublicKey, testAccountID)

	// Set environment variables before calling NewServerConfig
	testEnvVars := map[string]string{
		"HOST":        host,
		"PORT":        fmt.Sprintf("%d", port),
		"ENVIRONMENT": environment,
		"LOG_LEVEL":   "error",

		"DOCUSIGN_INTEGRATION_KEY": testIntegrationKey,
		"DOCUSIGN_USER_ID":         testUserID,
		"DOCUSIGN_ACCOUNT_ID":      testAccountID,
		"DOCUSIGN_PRIVATE_KEY":     escapedKey,
		"DOCUSIGN_BASE_URL":        testEnv.docusign.url(),
		"DOCUSIGN_AUTH_BASE_URL":   testEnv.docusign.url(),
	}

	// Save original env vars and set test values
	originalEnvVars := make(map[string]string)
	for key, value := range testEnvVars {
		originalEnvVars[key] = os.Getenv(key)
		os.Setenv(key, value)
	}

	// Restore original environment variables when test completes
	t.Cleanup(func() {
		for key, original := range originalEnvVars {
			if original != "" {
				os.Setenv(key, original)
			} else {
				os.Unsetenv(key)
			}
		}
	})

	cfg, err := config.NewServerConfig()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel = logger.ParseLogLevel("none")
	if enableServerLogs {
		logLevel = logger.ParseLogLevel("debug")
	}
	appLogger := logger.InitLogger(logLevel, "test")

	svcs := services.NewServices(cfg)

	serverInstance, err := server.NewServer(cfg, appLogger, svcs)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	// Create a cancellable context for server shutdown
	serverCtx, serverCancel := context.WithCancel(ctx)

	// Start server
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := serverInstance.Start(serverCtx); err != nil {
			serverDone <- err
		}
	}()

	// Create shutdown function to be called by the test
	testEnv.shutdown = func() {
		t.Log("Stopping server...")

		// Cancel the server context to trigger graceful shutdown
		serverCancel()

		// Wait for server to shut down gracefully with timeout
		select {
		case err := <-serverDone:
			if err != nil {
				t.Logf("❌ Server shutdown with error: %v", err)
			} else {
				t.Log("✅ Server shut down gracefully")
			}
		case <-time.After(5 * time.Second):
			t.Log("⚠️ Server shutdown timeout")
		}
	}

	testEnv.baseURL = fmt.Sprintf("http://localhost:%d", port)
	t.Logf("Starting in-process server at %s", testEnv.baseURL)

	testEnv.cfg = cfg

	// Wait for server to be ready
	if !waitForServer(t, testEnv.baseURL+"/health/live", 30*time.Second) {
		t.Fatal("Server failed to start within timeout")
	}

	t.Log("✅ Server started")
	return testEnv
}

func findFreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	return addr.Port
}

func waitForServer(t *testing.T, url string, timeout time.Duration) bool {
	t.Helper()

	client := &http.Client{Timeout: 1 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
