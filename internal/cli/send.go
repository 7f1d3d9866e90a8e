package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/esign-gateway/app/internal/crypto"
	"github.com/information-sharing-networks/esign-gateway/app/internal/esign"
	"github.com/information-sharing-networks/esign-gateway/app/internal/services"
	"github.com/spf13/cobra"
)

var (
	clientName    string
	clientEmail   string
	signerMessage string
	documentName  string
)

var sendCmd = &cobra.Command{
	Use:   "send <document-file>",
	Short: "Send a document for signature",
	Long: `Send a document for signature through the configured DocuSign integration.

The document is submitted with the same assertion -> token -> envelope
sequence the gateway uses, so the command doubles as a check that a
deployment's DocuSign credentials work.

The signature field is placed by anchor text: the document must contain the
literal text "Signature: ___" where the signature should appear.

Example:
  esign send ./agreement.docx --name "Jane Doe" --email jane@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&clientName, "name", "", "Signer's full name [required]")
	sendCmd.Flags().StringVar(&clientEmail, "email", "", "Signer's email address [required]")
	sendCmd.Flags().StringVar(&signerMessage, "message", "", "Message shown to the signer in the signing request email")
	sendCmd.Flags().StringVar(&documentName, "file-name", "", "Document name shown to the signer (defaults to the file's name)")
	sendCmd.MarkFlagRequired("name")
	sendCmd.MarkFlagRequired("email")
}

func runSend(cmd *cobra.Command, args []string) error {
	documentPath := args[0]

	if missing := cfg.MissingDocuSignVars(); len(missing) > 0 {
		return fmt.Errorf("missing DocuSign configuration: %s", strings.Join(missing, ", "))
	}

	docBytes, err := os.ReadFile(documentPath) // #nosec G304 -- the operator chooses the file to send
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	req := esign.AgreementRequest{
		DocBase64:     base64.StdEncoding.EncodeToString(docBytes),
		FileName:      documentName,
		ClientName:    clientName,
		ClientEmail:   clientEmail,
		SignerMessage: signerMessage,
	}
	if req.FileName == "" {
		req.FileName = filepath.Base(documentPath)
	}

	env := esign.DeriveEnvironment(cfg.DocuSignBaseURL)
	audience := esign.AssertionAudience(env, cfg.DocuSignAuthBaseURL)

	submissionID := uuid.NewString()
	appLogger.Info("sending agreement",
		slog.String("submission_id", submissionID),
		slog.String("environment", string(env)),
		slog.String("document", documentPath),
		slog.String("document_checksum", crypto.CalculateSHA256Hex(docBytes)),
	)

	assertion, err := esign.BuildAssertion(
		cfg.DocuSignIntegrationKey,
		cfg.DocuSignUserID,
		audience,
		cfg.DocuSignPrivateKeyPEM(),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to build the authorization assertion: %w", err)
	}

	svcs := services.NewServices(cfg)

	token, err := svcs.Auth.ExchangeAssertion(cmd.Context(), env, assertion)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	envelope := esign.BuildEnvelopeDefinition(&req)

	created, err := svcs.Envelopes.CreateEnvelope(cmd.Context(), token.AccessToken, envelope)
	if err != nil {
		return fmt.Errorf("envelope submission failed: %w", err)
	}

	appLogger.Info("agreement sent",
		slog.String("submission_id", submissionID),
		slog.String("envelope_id", created.EnvelopeID),
		slog.String("envelope_status", created.Status),
	)

	fmt.Printf("✓ Envelope %s (%s)\n", created.EnvelopeID, created.Status)
	fmt.Printf("✓ Signing request emailed to %s\n", clientEmail)

	return nil
}
