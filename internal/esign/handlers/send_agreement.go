package handlers

// send_agreement.go implements the POST /v1/agreements endpoint for sending
// an agreement document out for signature via DocuSign.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/information-sharing-networks/esign-gateway/app/internal/config"
	"github.com/information-sharing-networks/esign-gateway/app/internal/crypto"
	"github.com/information-sharing-networks/esign-gateway/app/internal/esign"
	"github.com/information-sharing-networks/esign-gateway/app/internal/logger"
	"github.com/information-sharing-networks/esign-gateway/app/internal/services"
)

// SendAgreementHandler handles POST /v1/agreements requests
type SendAgreementHandler struct {
	cfg *config.ServerEnvironment

	// auth exchanges the signed JWT-bearer assertion for an access token
	auth services.TokenExchanger

	// envelopes submits envelope definitions to the eSignature API
	envelopes services.EnvelopeSubmitter
}

// NewSendAgreementHandler creates a new handler for sending agreements
func NewSendAgreementHandler(cfg *config.ServerEnvironment, svcs *services.Services) *SendAgreementHandler {
	return &SendAgreementHandler{
		cfg:       cfg,
		auth:      svcs.Auth,
		envelopes: svcs.Envelopes,
	}
}

// validateRequest returns the names of the required request fields that are
// missing. Field names match the JSON body so callers can act on them.
func validateRequest(req *esign.AgreementRequest) []string {
	var missing []string
	if req.DocBase64 == "" {
		missing = append(missing, "docBase64")
	}
	if req.ClientName == "" {
		missing = append(missing, "clientName")
	}
	if req.ClientEmail == "" {
		missing = append(missing, "clientEmail")
	}
	return missing
}

// HandleSendAgreement godoc
//
//	@Summary		Send agreement for signature
//	@Description	Sends a base64-encoded agreement document to a signer via DocuSign.
//	@Description
//	@Description	The gateway authenticates to DocuSign with a JWT-bearer grant
//	@Description	(no user interaction), creates an envelope with a single document and
//	@Description	a single signer, and dispatches it immediately - the signer receives
//	@Description	the signing request by email.
//	@Description
//	@Description	The signature field is placed by anchor text: the document must
//	@Description	contain the literal text "Signature: ___" where the signature
//	@Description	should appear.
//	@Description
//	@Description	`docBase64`, `clientName` and `clientEmail` are required; `fileName`
//	@Description	and `signerMessage` are optional. No state is kept: resubmitting the
//	@Description	same request creates a new envelope.
//
//	@Tags			agreements
//	@Accept			json
//	@Produce		json
//
//	@Param			request	body		esign.AgreementRequest	true	"agreement submission"
//
//	@Success		200		{object}	esign.AgreementResponse	"Envelope created and sent to the signer"
//	@Failure		400		{object}	esign.AgreementResponse	"Malformed body or missing required fields"
//	@Failure		405		{object}	esign.AgreementResponse	"Method not allowed (only POST and OPTIONS are accepted)"
//	@Failure		413		{object}	esign.AgreementResponse	"Request body exceeds the configured size limit"
//	@Failure		500		{object}	esign.AgreementResponse	"Server misconfiguration or DocuSign failure"
//
//	@Router			/v1/agreements [post]
func (s *SendAgreementHandler) HandleSendAgreement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLogger := logger.ContextRequestLogger(ctx)

	// Step 1. Method check. OPTIONS pre-flight gets an empty 200 (the CORS
	// middleware has already set the response headers); anything other than
	// POST is rejected without reading the body.
	if r.Method == http.MethodOptions {
		esign.RespondWithStatusCodeOnly(w, http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		esign.RespondWithJSON(w, http.StatusMethodNotAllowed, esign.AgreementResponse{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	// Step 2. Decode the request body (failures return 400, or 413 when the
	// size limit middleware cut the body off).
	var req esign.AgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			esign.RespondWithError(w, r, esign.NewRequestTooLargeError(
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit)))
			return
		}
		esign.RespondWithError(w, r, esign.WrapMalformedRequestError(err, "Invalid request body"))
		return
	}
	defer r.Body.Close()

	// Step 3. Validate required fields before any credential or network
	// work - a request missing fields must fail identically on a
	// misconfigured server.
	if missing := validateRequest(&req); len(missing) > 0 {
		esign.RespondWithError(w, r, esign.NewValidationError(
			"Missing required fields: "+strings.Join(missing, ", ")))
		return
	}

	// Step 4. Check the DocuSign credentials are configured. The missing
	// variable names are logged but never sent to the client.
	if missing := s.cfg.MissingDocuSignVars(); len(missing) > 0 {
		esign.RespondWithError(w, r, esign.NewConfigError(
			"missing DocuSign configuration: "+strings.Join(missing, ", ")))
		return
	}

	// Step 5. Select the DocuSign environment from the API base URL and
	// build the signed assertion for it.
	env := esign.DeriveEnvironment(s.cfg.DocuSignBaseURL)
	audience := esign.AssertionAudience(env, s.cfg.DocuSignAuthBaseURL)

	assertion, err := esign.BuildAssertion(
		s.cfg.DocuSignIntegrationKey,
		s.cfg.DocuSignUserID,
		audience,
		s.cfg.DocuSignPrivateKeyPEM(),
		time.Now(),
	)
	if err != nil {
		esign.RespondWithError(w, r, err)
		return
	}

	// Step 6. Exchange the assertion for an access token.
	token, err := s.auth.ExchangeAssertion(ctx, env, assertion)
	if err != nil {
		esign.RespondWithError(w, r, err)
		return
	}

	// Step 7. Build and submit the envelope.
	envelope := esign.BuildEnvelopeDefinition(&req)
	created, err := s.envelopes.CreateEnvelope(ctx, token.AccessToken, envelope)
	if err != nil {
		esign.RespondWithError(w, r, err)
		return
	}

	// Step 8. Record the envelope id and content checksums in the request
	// log. The gateway does not retain the document, so the checksums are
	// the only durable reference to what was submitted.
	logger.ContextWithLogAttrs(ctx, slog.String("envelope_id", created.EnvelopeID))
	if checksum, err := crypto.CalculateSHA256FromBase64(req.DocBase64); err == nil {
		logger.ContextWithLogAttrs(ctx, slog.String("document_checksum", checksum))
	}
	if payload, err := json.Marshal(envelope); err == nil {
		if checksum, err := crypto.CanonicalChecksum(payload); err == nil {
			logger.ContextWithLogAttrs(ctx, slog.String("envelope_checksum", checksum))
		}
	}

	reqLogger.Info("Agreement sent",
		slog.String("envelope_id", created.EnvelopeID),
		slog.String("envelope_status", created.Status),
		slog.String("environment", string(env)),
	)

	esign.RespondWithJSON(w, http.StatusOK, esign.AgreementResponse{
		Success:    true,
		EnvelopeID: created.EnvelopeID,
		Status:     created.Status,
		Message:    "Agreement sent to " + req.ClientEmail,
	})
}
