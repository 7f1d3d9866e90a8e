// Package integration contains end-to-end tests for the e-signature gateway.
//
// These tests verify the server handles API requests correctly (expected
// responses, error handling, outbound DocuSign calls). The server is started
// in-process and pointed at a stub DocuSign server that implements the token
// and envelope endpoints, so the full assertion -> token -> envelope sequence
// is exercised without real credentials.
//
// These tests assume the crypto and esign packages are working correctly
// (tested separately). If bugs are introduced in lower-level packages, there
// will be cascading failures here - fix the low-level problems first.
package integration
