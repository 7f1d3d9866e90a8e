package services

// services provides the DocuSign integrations used by the gateway (token exchange, envelope submission)

import (
	"github.com/information-sharing-networks/esign-gateway/app/internal/config"
)

// Services aggregates all external service integrations used by the gateway.
type Services struct {
	Auth      TokenExchanger
	Envelopes EnvelopeSubmitter
	// Future: envelope status polling, webhook verification
}

// NewServices creates service implementations based on configuration.
// This is the single entry point for initializing all external service integrations.
func NewServices(cfg *config.ServerEnvironment) *Services {
	return &Services{
		Auth:      NewAuthClient(cfg),
		Envelopes: NewEnvelopeClient(cfg),
	}
}
