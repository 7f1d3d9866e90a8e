// envelope.go builds the envelope-creation payload submitted to DocuSign.
package esign

import "fmt"

// DefaultFileName is used when the request does not name the document.
const DefaultFileName = "agreement.docx"

const (
	// single document, single signer - the ids and routing order are fixed
	documentID    = "1"
	recipientID   = "1"
	routingOrder  = "1"
	fileExtension = "docx"

	// the signature field anchors to this literal text in the document,
	// offset 100px right and 5px up from the match
	anchorString  = "Signature: ___"
	anchorUnits   = "pixels"
	anchorXOffset = "100"
	anchorYOffset = "-5"

	// envelopes are dispatched immediately, there is no draft step
	envelopeStatusSent = "sent"
)

// BuildEnvelopeDefinition constructs the envelope payload from a validated
// agreement request.
//
// The email subject is always derived from the client name. The email body
// uses the request's signerMessage when present, otherwise a default
// greeting. The document base64 is passed through untouched - DocuSign
// decodes it, so the gateway never needs the raw bytes.
func BuildEnvelopeDefinition(req *AgreementRequest) *EnvelopeDefinition {
	fileName := req.FileName
	if fileName == "" {
		fileName = DefaultFileName
	}

	emailBlurb := req.SignerMessage
	if emailBlurb == "" {
		emailBlurb = fmt.Sprintf("Hi %s, please review and sign the attached agreement.", req.ClientName)
	}

	return &EnvelopeDefinition{
		EmailSubject: fmt.Sprintf("Agreement for %s - Signature Required", req.ClientName),
		EmailBlurb:   emailBlurb,
		Documents: []Document{
			{
				DocumentBase64: req.DocBase64,
				Name:           fileName,
				FileExtension:  fileExtension,
				DocumentID:     documentID,
			},
		},
		Recipients: Recipients{
			Signers: []Signer{
				{
					Email:        req.ClientEmail,
					Name:         req.ClientName,
					RecipientID:  recipientID,
					RoutingOrder: routingOrder,
					Tabs: Tabs{
						SignHereTabs: []SignHereTab{
							{
								AnchorString:  anchorString,
								AnchorUnits:   anchorUnits,
								AnchorXOffset: anchorXOffset,
								AnchorYOffset: anchorYOffset,
							},
						},
					},
				},
			},
		},
		Status: envelopeStatusSent,
	}
}
