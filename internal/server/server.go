package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/information-sharing-networks/esign-gateway/app/internal/config"
	"github.com/information-sharing-networks/esign-gateway/app/internal/crypto"
	esignhandlers "github.com/information-sharing-networks/esign-gateway/app/internal/esign/handlers"
	"github.com/information-sharing-networks/esign-gateway/app/internal/logger"
	commonhandlers "github.com/information-sharing-networks/esign-gateway/app/internal/server/handlers"
	"github.com/information-sharing-networks/esign-gateway/app/internal/server/middleware"
	"github.com/information-sharing-networks/esign-gateway/app/internal/services"
	"github.com/information-sharing-networks/esign-gateway/app/internal/version"
)

type Server struct {
	config   *config.ServerEnvironment
	logger   *slog.Logger
	router   *chi.Mux
	services *services.Services
	jwkSet   jwk.Set
}

func NewServer(
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
	svcs *services.Services,
) (*Server, error) {
	server := &Server{
		config:   cfg,
		logger:   logger,
		router:   chi.NewRouter(),
		services: svcs,
	}

	if err := server.initSigningJWKSet(); err != nil {
		return nil, fmt.Errorf("failed to build the signing JWK set: %w", err)
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server, nil
}

// initSigningJWKSet publishes the public half of the configured signing key
// at /.well-known/jwks.json so DocuSign administrators can cross-check the
// key registered for the integration.
//
// A missing or unparseable key is not fatal: the credential problem is
// reported per agreement request, and the JWKS endpoint serves an empty set
// in the meantime.
func (s *Server) initSigningJWKSet() error {
	s.jwkSet = jwk.NewSet()

	if s.config.DocuSignPrivateKey == "" {
		s.logger.Warn("DOCUSIGN_PRIVATE_KEY is not set - serving an empty JWK set")
		return nil
	}

	privateKey, err := crypto.ParseRSAPrivateKeyFromPEM([]byte(s.config.DocuSignPrivateKeyPEM()))
	if err != nil {
		s.logger.Warn("could not parse DOCUSIGN_PRIVATE_KEY - serving an empty JWK set",
			slog.String("error", err.Error()))
		return nil
	}

	keyID, err := crypto.GenerateKeyIDFromRSAKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to derive a key id: %w", err)
	}

	jwkSet, err := crypto.SigningJWKSet(privateKey, keyID)
	if err != nil {
		return fmt.Errorf("failed to convert the signing key to a JWK set: %w", err)
	}

	s.jwkSet = jwkSet
	s.logger.Info("signing key published",
		slog.String("kid", keyID))

	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.AllowedOrigins))
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxRequestBodySize))
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
}

func (s *Server) registerRoutes() {
	agreementHandler := esignhandlers.NewSendAgreementHandler(s.config, s.services)

	// the agreement handler does its own method dispatch (OPTIONS pre-flight
	// and 405s), so the route is registered for all methods
	s.router.Handle("/v1/agreements", http.HandlerFunc(agreementHandler.HandleSendAgreement))

	s.router.Get("/health/live", commonhandlers.HandleHealth)
	s.router.Get("/ready", commonhandlers.HandleReadiness(s.config))
	s.router.Get("/version", commonhandlers.HandleVersion(version.Get().Version, version.Get().BuildDate))
	s.router.Get("/.well-known/jwks.json", commonhandlers.HandleJWKS(s.jwkSet))
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
