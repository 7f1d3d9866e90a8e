// Package server provides the HTTP server for the e-signature gateway.
//
// the server is configured through environment variables
// (see app/internal/config/config.go for details)
//
// The package wires up
//   - the agreement submission handler (app/internal/esign/handlers)
//   - common infrastructure handlers (health, version, jwks etc).
//
// middleware is in app/internal/server/middleware
package server
