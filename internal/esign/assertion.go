// assertion.go builds the signed JWT-bearer assertion used to authenticate
// to DocuSign (OAuth 2.0 JWT authorization grant, RFC 7523).
package esign

import (
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/information-sharing-networks/esign-gateway/app/internal/crypto"
)

// AssertionLifetime is the assertion validity window (exp = iat + 1h).
const AssertionLifetime = time.Hour

// AssertionScope requests signing rights plus impersonation of the user
// named in the sub claim.
const AssertionScope = "signature impersonation"

// BuildAssertion creates the RS256-signed assertion presented to the
// DocuSign token endpoint:
//
//   - iss: the integration key (OAuth client id)
//   - sub: the DocuSign user being impersonated
//   - aud: the OAuth server host the token request will be sent to
//   - iat/exp: now and now + AssertionLifetime
//   - scope: AssertionScope
//
// privateKeyPEM must hold the integration key's RSA private key in PKCS#1
// or PKCS#8 PEM form. now is a parameter so tests can pin the timestamps.
func BuildAssertion(integrationKey, userID, audience, privateKeyPEM string, now time.Time) (string, error) {
	privateKey, err := crypto.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", WrapSigningError(err, "failed to parse the DocuSign private key")
	}

	issuedAt := now.UTC().Truncate(time.Second)

	token, err := jwt.NewBuilder().
		Issuer(integrationKey).
		Subject(userID).
		Audience([]string{audience}).
		IssuedAt(issuedAt).
		Expiration(issuedAt.Add(AssertionLifetime)).
		Claim("scope", AssertionScope).
		Build()
	if err != nil {
		return "", WrapSigningError(err, "failed to build assertion claims")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), privateKey))
	if err != nil {
		return "", WrapSigningError(err, "failed to sign assertion")
	}

	return string(signed), nil
}
