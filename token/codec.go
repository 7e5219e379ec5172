package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies tokens with a single shared HS256 secret.
//
// Contract:
// - Concurrency: safe for concurrent use; the secret is immutable after construction.
// - Errors: Verify returns one of the package sentinel errors; Issue fails
//   only on signing problems, which indicate misconfiguration.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
}

// NewCodec creates a codec. An empty secret is a configuration error and
// must abort startup rather than fail lazily per request.
func NewCodec(secret []byte, issuer, audience string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrNoSigningSecret
	}
	return &Codec{
		secret:   append([]byte(nil), secret...),
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Issue builds a signed token of the given kind expiring at now + ttl.
// A zero ttl produces a token without an expiry claim (api keys).
func (c *Codec) Issue(claims Claims, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()

	claims.Kind = kind
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:   c.issuer,
		Audience: jwt.ClaimStrings{c.audience},
		Subject:  claims.Subject(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(c.secret)
}

// Verify checks signature, issuer, audience, and expiry, then enforces the
// expected kind. Expiry is reported as ErrTokenExpired, distinct from the
// other failure reasons.
func (c *Codec) Verify(tokenString string, expected Kind) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			// Bad signature, wrong issuer, or wrong audience: the token was
			// not issued by this service.
			return nil, ErrSignatureInvalid
		}
	}

	if claims.Kind != expected {
		return nil, ErrKindMismatch
	}

	return claims, nil
}

// DecodeUnsafe extracts claims without verifying the signature. It exists
// for advisory checks such as "is this token about to expire" and must
// never be used to authorize a request. Returns nil if the token cannot be
// parsed.
func (c *Codec) DecodeUnsafe(tokenString string) *Claims {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	return claims
}
