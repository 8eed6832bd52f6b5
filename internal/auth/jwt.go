package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IDTokenIssuer is the iss claim on identity tokens minted by this server.
const IDTokenIssuer = "hhfapi"

// IDTokenClaims are the identity claims embedded in the HS256 token that
// rides along with each session. The token is informational: it lets clients
// render the signed-in identity without another round trip. It deliberately
// carries no role claim, because the role is resolved fresh against the
// record store and must never be trusted from a client-held artifact.
type IDTokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SignIDToken mints an HS256 identity token for the given identity.
func SignIDToken(secret []byte, identityID, email, name string, expiresAt time.Time) (string, error) {
	claims := IDTokenClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    IDTokenIssuer,
			Subject:   identityID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign id token: %w", err)
	}
	return signed, nil
}

// ParseIDToken verifies an identity token's signature, issuer, and expiry
// and returns its raw claims. Callers extract the identity fields with
// DecodeIdentityClaims.
func ParseIDToken(secret []byte, tokenString string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(IDTokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}
	return claims, nil
}
