package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/information-sharing-networks/esign-gateway/app/internal/config"
	"github.com/information-sharing-networks/esign-gateway/app/internal/logger"
	"github.com/information-sharing-networks/esign-gateway/app/internal/server"
	"github.com/information-sharing-networks/esign-gateway/app/internal/services"
	"github.com/information-sharing-networks/esign-gateway/app/internal/version"
	"github.com/spf13/cobra"
)

//	@title			esign-gateway
//	@description	esign-gateway submits agreement documents for e-signature through DocuSign's JWT-bearer OAuth flow
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `500` Internal server error
//	@description
//	@description	Individual endpoints document their specific business logic errors.
//	@description
//	@description	## Request Limits
//	@description	Requests are limited to a configurable maximum body size - default 10MB (see env vars).
//	@description	Base64 encoding adds roughly a third to the document size, so the default accepts documents of about 7MB on disk.
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured limit.
//	@description
//	@description	## Authentication & Authorization
//	@description
//	@description	The gateway endpoints do not require credentials to be sent with the request -
//	@description	the service is expected to sit behind an authenticating reverse proxy or be
//	@description	reachable only from trusted callers.
//	@description
//	@description	The gateway itself authenticates to DocuSign with an RS256-signed JWT-bearer
//	@description	grant (consent for the integration must already have been granted by the
//	@description	impersonated user). The signing key never leaves the server.
//	@description
//	@license.name	MIT

//	@servers.url			https://esign.example.com
//	@servers.description	Production server
//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			agreements
//	@tag.description	Agreement submission endpoints

//	@tag.name			Common
//	@tag.description	Server API endpoints (jwks, health, readiness, version, etc.)

func main() {
	cmd := &cobra.Command{
		Use:   "esign-server",
		Short: "e-signature gateway server",
		Long:  `esign-server exposes a JSON API for sending agreement documents out for signature via DocuSign`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	// credential values are never logged - only the base URLs and whether
	// the credentials are present
	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("DOCUSIGN_BASE_URL", cfg.DocuSignBaseURL),
		slog.String("DOCUSIGN_AUTH_BASE_URL", cfg.DocuSignAuthBaseURL),
		slog.Bool("DOCUSIGN_CREDENTIALS_CONFIGURED", len(cfg.MissingDocuSignVars()) == 0),
	)

	if missing := cfg.MissingDocuSignVars(); len(missing) > 0 {
		appLogger.Warn("DocuSign credentials missing - agreement requests will fail until they are set",
			slog.String("missing", strings.Join(missing, ", ")))
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcs := services.NewServices(cfg)

	// configure the server
	server, err := server.NewServer(cfg, appLogger, svcs)
	if err != nil {
		appLogger.Error("Failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// start the server
	if err := server.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
