// types.go defines the agreements API types and the DocuSign wire types.
//
// The DocuSign structs model only the fields this gateway reads or writes -
// the eSignature REST API accepts and returns far more, all of which is
// ignored here.
package esign

// AgreementRequest is the request body for POST /v1/agreements.
type AgreementRequest struct {
	// Base64-encoded document to send for signature
	DocBase64 string `json:"docBase64" example:"UEsDBBQABgAIAAAAIQDfpNJsWgEAACAFAAATAAgC..."`

	// Display name for the document, defaults to agreement.docx
	FileName string `json:"fileName,omitempty" example:"consulting-agreement.docx"`

	// Signer's full name
	ClientName string `json:"clientName" example:"Jane Doe"`

	// Signer's email address
	ClientEmail string `json:"clientEmail" example:"jane.doe@example.com"`

	// Optional custom message for the signing request email
	SignerMessage string `json:"signerMessage,omitempty" example:"Please review and sign by Friday."`
}

// AgreementResponse is the response body for POST /v1/agreements.
//
// On success the envelope id and status are set and the message names the
// recipient. On failure only success and message are set.
type AgreementResponse struct {
	Success    bool   `json:"success" example:"true"`
	EnvelopeID string `json:"envelopeId,omitempty" example:"0c9b4d7e-1f2a-4e5b-8c3d-9a6f7e8b1c2d"`
	Status     string `json:"status,omitempty" example:"sent"`
	Message    string `json:"message" example:"Agreement sent to jane.doe@example.com"`
}

// TokenResponse is the body returned by the DocuSign OAuth token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// EnvelopeDefinition is the envelope-creation payload for the DocuSign
// eSignature REST API v2.1.
//
// All numeric-looking identifiers (documentId, recipientId, routingOrder,
// offsets) are strings on the wire.
type EnvelopeDefinition struct {
	EmailSubject string     `json:"emailSubject"`
	EmailBlurb   string     `json:"emailBlurb"`
	Documents    []Document `json:"documents"`
	Recipients   Recipients `json:"recipients"`
	Status       string     `json:"status"`
}

// Document is a file attached to an envelope.
type Document struct {
	DocumentBase64 string `json:"documentBase64"`
	Name           string `json:"name"`
	FileExtension  string `json:"fileExtension"`
	DocumentID     string `json:"documentId"`
}

// Recipients holds the envelope's signing parties.
type Recipients struct {
	Signers []Signer `json:"signers"`
}

// Signer is a recipient who signs the document.
type Signer struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	RecipientID  string `json:"recipientId"`
	RoutingOrder string `json:"routingOrder"`
	Tabs         Tabs   `json:"tabs"`
}

// Tabs holds the signing fields placed in the document for one signer.
type Tabs struct {
	SignHereTabs []SignHereTab `json:"signHereTabs"`
}

// SignHereTab positions a signature field by anchoring it to literal text
// that must appear in the document.
type SignHereTab struct {
	AnchorString  string `json:"anchorString"`
	AnchorUnits   string `json:"anchorUnits"`
	AnchorXOffset string `json:"anchorXOffset"`
	AnchorYOffset string `json:"anchorYOffset"`
}

// EnvelopeCreateResponse is the body returned by the DocuSign envelope
// endpoint on success.
type EnvelopeCreateResponse struct {
	EnvelopeID     string `json:"envelopeId"`
	Status         string `json:"status"`
	StatusDateTime string `json:"statusDateTime,omitempty"`
	URI            string `json:"uri,omitempty"`
}
