package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/esign-gateway/app/internal/crypto"
	"github.com/spf13/cobra"
)

// file naming convention - <name>.private.pem, <name>.public.pem and <name>.public.jwk
const (
	privateKeyFileNameFormat = "%s.private.pem"
	publicKeyFileNameFormat  = "%s.public.pem"
	publicJWKFileNameFormat  = "%s.public.jwk"
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an RSA key pair for assertion signing",
	Long: `Generate a new RSA key pair for signing DocuSign authorization assertions.

The public key must be registered with the DocuSign integration (Apps and
Keys page). The private key is supplied to the gateway via the
DOCUSIGN_PRIVATE_KEY environment variable and must be kept secret.

The public key is also written in JWK form so it can be compared with the
set the gateway publishes at /.well-known/jwks.json.

Example:
  esign keygen --size 4096 --outputdir ./keys --name docusign`,
	RunE: runKeygen,
}

var (
	keySize   int
	outputDir string
	keyName   string
	keyID     string
)

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().IntVar(&keySize, "size", 4096, "RSA key size in bits (2048 or 4096)")
	keygenCmd.Flags().StringVar(&outputDir, "outputdir", "./keys", "Output directory for the key files")
	keygenCmd.Flags().StringVar(&keyName, "name", "docusign", "File name prefix for the key files")
	keygenCmd.Flags().StringVar(&keyID, "key-id", "", "Key ID for the public JWK (defaults to a generated UUID)")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if keySize != 2048 && keySize != 4096 {
		return fmt.Errorf("invalid RSA key size: %d (must be 2048 or 4096)", keySize)
	}

	// make the directory if it doesn't exist
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	kid := keyID
	if kid == "" {
		kid = uuid.NewString()
	}

	fmt.Printf("Generating %d-bit RSA key pair\n", keySize)

	privateKey, err := crypto.GenerateRSAKeyPair(keySize)
	if err != nil {
		return fmt.Errorf("failed to generate RSA key: %w", err)
	}

	privateFile := fmt.Sprintf(privateKeyFileNameFormat, keyName)
	if err := crypto.SaveRSAPrivateKeyToPEMFile(privateKey, outputDir, privateFile); err != nil {
		return fmt.Errorf("failed to save private key: %w", err)
	}
	fmt.Printf("✓ Private PEM: %s\n", filepath.Join(outputDir, privateFile))

	publicFile := fmt.Sprintf(publicKeyFileNameFormat, keyName)
	if err := crypto.SaveRSAPublicKeyToPEMFile(&privateKey.PublicKey, outputDir, publicFile); err != nil {
		return fmt.Errorf("failed to save public key: %w", err)
	}
	fmt.Printf("✓ Public PEM:  %s\n", filepath.Join(outputDir, publicFile))

	jwkFile := fmt.Sprintf(publicJWKFileNameFormat, keyName)
	if err := crypto.SaveRSAPublicKeyToJWKFile(&privateKey.PublicKey, kid, outputDir, jwkFile); err != nil {
		return fmt.Errorf("failed to save public JWK: %w", err)
	}
	fmt.Printf("✓ Public JWK:  %s (kid: %s)\n", filepath.Join(outputDir, jwkFile), kid)

	fmt.Println()
	fmt.Println("Register the public key with the DocuSign integration and keep the private key secret.")

	return nil
}
