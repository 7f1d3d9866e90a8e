// crypto package provides cryptographic functions for the esign gateway.
//
// these are low level functions - RSA key generation and PEM/JWK handling
// (DocuSign JWT-bearer auth requires RS256, so only RSA keys are supported),
// SHA-256 checksums for audit logging of submitted documents, and RFC 8785
// JSON canonicalization so checksums of JSON payloads are stable across
// marshals.
//
// See the esign package for the assertion signing and envelope building that
// sits on top of these functions.
package crypto
