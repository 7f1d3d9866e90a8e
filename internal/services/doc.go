// Package services provides the DocuSign API integrations for the gateway.
//
// This package abstracts the two outbound calls the agreement flow makes
// (OAuth token exchange, envelope submission) behind interfaces so handlers
// can be tested against fakes and the integration tests can point the
// clients at a stub DocuSign server.
//
// Each service is defined as an interface with the HTTP implementation
// created from configuration via NewServices.
package services
