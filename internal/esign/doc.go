// esign package implements the DocuSign integration used by the agreements
// endpoint: building the JWT-bearer assertion, selecting the demo/production
// environment, and constructing the envelope-creation payload.
//
// **flow**
// Each agreement request runs the same three-step sequence: sign an
// assertion (assertion.go), exchange it for a bearer token, then submit the
// envelope. The HTTP calls for the last two steps live in the services
// package; the handlers that orchestrate the flow are in esign/handlers.
//
// **types**
// The public API request/response structs and the DocuSign wire types are in
// types.go.
//
// **error handling**
// Failures are wrapped in EsignError values with a stage-specific code
// (validation, config, signing, auth, submission). error_response.go maps
// each code deterministically to an HTTP status and client message - use
// RespondWithError() to create and send the response. The full error is
// logged server-side; configuration errors are the one case where the client
// message is a sanitized constant rather than the error text.
//
// **state**
// There is none: every request is independent. Tokens are not cached and no
// record of an envelope is kept once the response is written (DocuSign is
// the system of record - the request log carries the envelope id and a
// checksum of the submitted document for audit).
package esign
