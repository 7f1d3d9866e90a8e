// Package commonhandlers provides general infrastructure HTTP handlers
// (health, readiness, version, jwks etc).
//
// The agreement submission API lives in app/internal/esign/handlers - the
// handlers here are the service plumbing shared by any deployment.
package commonhandlers
